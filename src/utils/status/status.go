package status

import (
	"errors"
	"time"

	"github.com/warp-contracts/loader/src/utils/arweave"
)

// Confirmation state of an upload, as last seen by this process
type Code string

const (
	// Accepted by the gateway, not yet seen in the mempool
	Submitted Code = "Submitted"

	// Waiting in the mempool to be mined
	Pending Code = "Pending"

	// Included in a block
	Confirmed Code = "Confirmed"

	// Unknown to the network, dropped or never arrived
	NotFound Code = "NotFound"
)

// Status of a single uploaded transaction
type Status struct {
	Id           arweave.Base64String `json:"id"`
	Status       Code                 `json:"status"`
	FilePath     string               `json:"file_path,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	LastModified time.Time            `json:"last_modified"`
	Reward       uint64               `json:"reward"`
	Raw          *arweave.TxStatus    `json:"raw,omitempty"`
}

// PathId maps a relative path to the id of the data item that carries it
type PathId struct {
	Id arweave.Base64String `json:"id"`
}

// Status of a bundle transaction carrying multiple files
type BundleStatus struct {
	Status
	NumberOfFiles uint64            `json:"number_of_files"`
	DataSize      uint64            `json:"data_size"`
	FilePaths     map[string]PathId `json:"file_paths"`
}

func (self *Status) Confirmations() int64 {
	if self.Raw == nil {
		return 0
	}
	return self.Raw.NumberOfConfirmations
}

// Apply folds a network status query result into the record.
// The network client answers with ErrPending and ErrNotFound
// for transactions that aren't mined yet.
func (self *Status) Apply(raw *arweave.TxStatus, queryErr error) (err error) {
	switch {
	case queryErr == nil:
		self.Status = Confirmed
		self.Raw = raw
	case errors.Is(queryErr, arweave.ErrPending):
		self.Status = Pending
	case errors.Is(queryErr, arweave.ErrNotFound):
		self.Status = NotFound
	default:
		return queryErr
	}

	self.LastModified = time.Now()
	return nil
}

// Filter keeps statuses whose code is in the given set and whose
// confirmation count doesn't exceed the limit. An empty set accepts
// every code, a nil limit accepts any number of confirmations.
func Filter(statuses []*Status, codes []Code, maxConfirms *int64) (out []*Status) {
	set := make(map[Code]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}

	out = make([]*Status, 0, len(statuses))
	for _, status := range statuses {
		if len(set) > 0 {
			_, ok := set[status.Status]
			if !ok {
				continue
			}
		}
		if maxConfirms != nil && status.Confirmations() > *maxConfirms {
			continue
		}
		out = append(out, status)
	}
	return
}

// ParseCode accepts the user facing status names
func ParseCode(s string) (Code, error) {
	switch Code(s) {
	case Submitted, Pending, Confirmed, NotFound:
		return Code(s), nil
	default:
		return "", ErrUnknownStatusCode
	}
}
