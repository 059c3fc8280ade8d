package router

import "errors"

var ErrNotValid = errors.New("invalid path variable")
