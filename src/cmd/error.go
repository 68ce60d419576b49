package cmd

import "errors"

var (
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrNoFilesMatched      = errors.New("no files matched")
	ErrMissingLogDir       = errors.New("no status directory configured, set --log-dir")
	ErrInvalidTag          = errors.New("tag is not in name:value form")
	ErrUploadsFailed       = errors.New("some uploads failed")
	ErrChecksFailed        = errors.New("some status checks failed")
)
