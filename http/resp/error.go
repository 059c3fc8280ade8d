package resp

import "errors"

var (
	ErrBadConfig        = errors.New("bad config")
	ErrDone             = errors.New("request ctx done")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrMissingData      = errors.New("missing data")
	ErrNotFound         = errors.New("not found")
	ErrTooManyRequests  = errors.New("too many requests")
)
