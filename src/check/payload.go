package check

import "github.com/warp-contracts/loader/src/utils/status"

// One journaled status moving through the check pipeline
type Payload struct {
	Status *status.Status

	// Set when querying the network failed for a reason
	// other than the transaction being pending or unknown
	Err error
}

func (self *Payload) Failed() bool {
	return self.Err != nil
}
