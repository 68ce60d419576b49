package upload

import (
	"github.com/warp-contracts/loader/src/utils/status"
)

// Upload is one unit of work travelling through the pipeline:
// a single file, or a group of files packed into one bundle
type Upload struct {
	// Local paths in iteration order
	Paths []string

	// Combined size of the files
	TotalBytes int64

	// Filled by the upload stage, one of the two depending on the mode
	File   *status.Status
	Bundle *status.BundleStatus

	// Failure of this unit only, peers keep going
	Err error
}

func (self *Upload) Failed() bool {
	return self.Err != nil
}
