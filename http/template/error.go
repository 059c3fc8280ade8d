package template

import "errors"

var (
	ErrNoFiles  = errors.New("no files provided")
	ErrNotExist = errors.New("template does not exist")
)
