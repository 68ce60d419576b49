package report

import (
	"go.uber.org/atomic"
)

type UploaderErrors struct {
	FileReadError    atomic.Uint64 `json:"file_read_error"`
	AnchorError      atomic.Uint64 `json:"anchor_error"`
	SigningError     atomic.Uint64 `json:"signing_error"`
	SubmitError      atomic.Uint64 `json:"submit_error"`
	ChunkUploadError atomic.Uint64 `json:"chunk_upload_error"`
	BundlingError    atomic.Uint64 `json:"bundling_error"`
	StatusSaveError  atomic.Uint64 `json:"status_save_error"`
}

type UploaderState struct {
	// Counting collected work
	FilesCollected  atomic.Uint64 `json:"files_collected"`
	GroupsCollected atomic.Uint64 `json:"groups_collected"`
	BytesCollected  atomic.Uint64 `json:"bytes_collected"`

	// Counting submitted transactions
	TransactionsSubmitted atomic.Uint64 `json:"transactions_submitted"`
	BundlesSubmitted      atomic.Uint64 `json:"bundles_submitted"`
	ItemsBundled          atomic.Uint64 `json:"items_bundled"`
	ChunksUploaded        atomic.Uint64 `json:"chunks_uploaded"`

	// Counting journaled statuses
	StatusesSaved atomic.Uint64 `json:"statuses_saved"`
}

type UploaderReport struct {
	State  UploaderState  `json:"state"`
	Errors UploaderErrors `json:"errors"`
}
