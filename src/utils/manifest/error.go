package manifest

import "errors"

var (
	ErrMissingTrailingSlash  = errors.New("base directory must end with a slash")
	ErrNoBundleStatusesFound = errors.New("no bundle statuses in the log directory")
	ErrManifestNotFound      = errors.New("no manifest record saved for this transaction")
)
