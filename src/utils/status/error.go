package status

import "errors"

var (
	ErrStatusNotFound    = errors.New("no status saved for this file path")
	ErrMissingFilePath   = errors.New("status has no file path to key by")
	ErrMissingId         = errors.New("status has no transaction id")
	ErrUnknownStatusCode = errors.New("unknown status code")
)
