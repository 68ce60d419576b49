package arweave

import (
	"bytes"
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"math/big"
	"strconv"
)

// Signs 32 byte digests and exposes the signing key's public modulus
type Signer interface {
	Sign(digest []byte) ([]byte, error)
	Owner() Base64String
}

type Transaction struct {
	Format    int          `json:"format"`
	ID        Base64String `json:"id"`
	LastTx    Base64String `json:"last_tx"`
	Owner     Base64String `json:"owner"`
	Tags      []Tag        `json:"tags"`
	Target    Base64String `json:"target"`
	Quantity  BigInt       `json:"quantity"`
	Data      Base64String `json:"data"`
	DataSize  BigInt       `json:"data_size"`
	DataRoot  Base64String `json:"data_root"`
	Reward    BigInt       `json:"reward"`
	Signature Base64String `json:"signature"`

	// Computed when needed, never serialized
	Chunks *Chunks `json:"-"`
}

// NewTransaction fills a format 2 transaction with the merkle data for the
// given payload. Data bytes stay with the caller, only the root and the
// proofs are kept. Reward and anchor get filled before signing.
func NewTransaction(data []byte, tags []Tag, target Base64String, quantity *big.Int) (self *Transaction) {
	self = new(Transaction)
	self.Format = 2
	self.Tags = tags
	self.Target = target
	if quantity == nil {
		quantity = big.NewInt(0)
	}
	self.Quantity = BigIntFromBig(quantity)
	self.PrepareChunks(data)
	return
}

func (self *Transaction) AddTag(name, value string) *Transaction {
	self.Tags = append(self.Tags, NewTag(name, value))
	return self
}

func (self *Transaction) PrepareChunks(data []byte) {
	chunks := ChunkData(data)
	leaves := GenerateLeaves(chunks)
	root := BuildLayers(leaves)
	proofs := GenerateProofs(root)

	// A zero length trailing chunk stays in the tree but is never posted
	lastChunk := chunks[len(chunks)-1]
	if lastChunk.MaxByteRange-lastChunk.MinByteRange == 0 {
		chunks = chunks[:len(chunks)-1]
		proofs = proofs[:len(proofs)-1]
	}

	self.DataSize = BigIntFromInt64(int64(len(data)))
	self.DataRoot = Base64String(root.ID)
	self.Chunks = &Chunks{
		DataRoot: self.DataRoot,
		Chunks:   chunks,
		Proofs:   proofs,
	}
}

// GetChunk assembles the upload body for chunk idx. Data must be the same
// buffer the chunks were prepared from.
func (self *Transaction) GetChunk(idx int, data []byte) (out *ChunkUpload, err error) {
	if self.Chunks == nil {
		err = ErrChunksNotPrepared
		return
	}
	if idx < 0 || idx >= len(self.Chunks.Chunks) {
		err = ErrChunkOutOfRange
		return
	}

	chunk := self.Chunks.Chunks[idx]
	proof := self.Chunks.Proofs[idx]

	out = &ChunkUpload{
		DataRoot: self.DataRoot,
		DataSize: self.DataSize.String(),
		DataPath: Base64String(proof.Proof),
		Offset:   strconv.Itoa(proof.Offset),
		Chunk:    Base64String(data[chunk.MinByteRange:chunk.MaxByteRange]),
	}
	return
}

// SigningData computes the deep hash of the transaction's item tree.
// Only the data root takes part, not the data itself.
func (self *Transaction) SigningData() (out []byte, err error) {
	if self.Format != 2 {
		err = ErrFailedToParse
		return
	}

	// Empty tag list hashes as an empty blob
	var tags any = []byte{}
	if len(self.Tags) > 0 {
		list := make([]any, len(self.Tags))
		for i, tag := range self.Tags {
			list[i] = []any{tag.Name, tag.Value}
		}
		tags = list
	}

	values := []any{
		"2",
		self.Owner,
		self.Target,
		[]byte(self.Quantity.String()),
		[]byte(self.Reward.String()),
		self.LastTx,
		tags,
		[]byte(self.DataSize.String()),
		self.DataRoot,
	}

	deepHash := DeepHash(values)
	out = deepHash[:]
	return
}

func (self *Transaction) Sign(signer Signer) (err error) {
	self.Owner = signer.Owner()

	data, err := self.SigningData()
	if err != nil {
		return
	}

	hashed := sha256.Sum256(data)
	self.Signature, err = signer.Sign(hashed[:])
	if err != nil {
		return
	}

	id := sha256.Sum256(self.Signature)
	self.ID = id[:]
	return
}

func (self *Transaction) IsSigned() bool {
	return len(self.Signature) > 0 && len(self.ID) > 0
}

// Verify re-derives the signed digest and checks both the id and the
// RSA-PSS signature against the owner's modulus.
func (self *Transaction) Verify() (err error) {
	if !self.IsSigned() {
		return ErrUnsignedTransaction
	}

	id := sha256.Sum256(self.Signature)
	if !bytes.Equal(id[:], self.ID) {
		return ErrInvalidSignature
	}

	data, err := self.SigningData()
	if err != nil {
		return
	}
	hashed := sha256.Sum256(data)

	ownerPublicKey := &rsa.PublicKey{
		N: new(big.Int).SetBytes(self.Owner),
		E: 65537, // "AQAB"
	}

	err = rsa.VerifyPSS(ownerPublicKey, crypto.SHA256, hashed[:], self.Signature, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthAuto,
		Hash:       crypto.SHA256,
	})
	if err != nil {
		return ErrInvalidSignature
	}
	return nil
}
