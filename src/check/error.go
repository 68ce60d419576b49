package check

import "errors"

var (
	ErrMissingStatusDir = errors.New("no status directory configured")
)
