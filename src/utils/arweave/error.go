package arweave

import "errors"

var (
	ErrFailedToParse        = errors.New("failed to parse response")
	ErrBadResponse          = errors.New("bad response")
	ErrNotFound             = errors.New("data not found")
	ErrPending              = errors.New("tx is pending")
	ErrUnsignedTransaction  = errors.New("transaction is not signed")
	ErrInvalidProof         = errors.New("invalid merkle proof")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrChunkOutOfRange      = errors.New("chunk index out of range")
	ErrChunksNotPrepared    = errors.New("chunks are not prepared")
)

type Error struct {
	Error string `json:"error"`
}
