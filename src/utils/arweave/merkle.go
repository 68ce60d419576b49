package arweave

import (
	"bytes"
	"crypto/sha256"
	"runtime"

	"github.com/gammazero/workerpool"
)

const (
	MAX_CHUNK_SIZE = 256 * 1024
	MIN_CHUNK_SIZE = 32 * 1024
	HASH_SIZE      = 32
	NOTE_SIZE      = 32

	BRANCH_RECORD_SIZE = 2*HASH_SIZE + NOTE_SIZE
	LEAF_RECORD_SIZE   = HASH_SIZE + NOTE_SIZE

	// Leaf hashing switches to the worker pool above this many chunks
	PARALLEL_LEAVES_THRESHOLD = 16
)

type Chunk struct {
	DataHash     []byte
	MinByteRange int
	MaxByteRange int
}

type Proof struct {
	Offset int
	Proof  []byte
}

type Chunks struct {
	DataRoot Base64String
	Chunks   []Chunk
	Proofs   []*Proof
}

type MerkleNode struct {
	ID           []byte
	DataHash     []byte
	ByteRange    int
	MinByteRange int
	MaxByteRange int
	IsLeaf       bool
	Left         *MerkleNode
	Right        *MerkleNode
}

// ChunkData splits data into pieces of at most MAX_CHUNK_SIZE bytes.
// A short tail gets merged with the piece before it and re-split in half,
// so no piece is smaller than MIN_CHUNK_SIZE unless the whole input is.
// Inputs sized at an exact multiple of MAX_CHUNK_SIZE get a trailing
// zero-length piece, same as the reference construction.
func ChunkData(data []byte) (chunks []Chunk) {
	chunks = make([]Chunk, 0, len(data)/MAX_CHUNK_SIZE+1)

	rest := data
	cursor := 0

	for len(rest) >= MAX_CHUNK_SIZE {
		chunkSize := MAX_CHUNK_SIZE

		// Tail shorter than MIN_CHUNK_SIZE is evened out with this chunk
		nextChunkSize := len(rest) - MAX_CHUNK_SIZE
		if nextChunkSize > 0 && nextChunkSize < MIN_CHUNK_SIZE {
			chunkSize = (len(rest) + 1) / 2
		}

		dataHash := sha256.Sum256(rest[:chunkSize])
		cursor += chunkSize
		chunks = append(chunks, Chunk{
			DataHash:     dataHash[:],
			MinByteRange: cursor - chunkSize,
			MaxByteRange: cursor,
		})
		rest = rest[chunkSize:]
	}

	dataHash := sha256.Sum256(rest)
	chunks = append(chunks, Chunk{
		DataHash:     dataHash[:],
		MinByteRange: cursor,
		MaxByteRange: cursor + len(rest),
	})
	return
}

func GenerateLeaves(chunks []Chunk) (leaves []*MerkleNode) {
	leaves = make([]*MerkleNode, len(chunks))

	if len(chunks) < PARALLEL_LEAVES_THRESHOLD {
		for i, chunk := range chunks {
			leaves[i] = hashLeaf(chunk)
		}
		return
	}

	pool := workerpool.New(runtime.NumCPU())
	for i, chunk := range chunks {
		i, chunk := i, chunk
		pool.Submit(func() {
			leaves[i] = hashLeaf(chunk)
		})
	}
	pool.StopWait()
	return
}

func hashLeaf(chunk Chunk) *MerkleNode {
	return &MerkleNode{
		ID:           hashAll(chunk.DataHash, noteBuffer(chunk.MaxByteRange)),
		DataHash:     chunk.DataHash,
		MinByteRange: chunk.MinByteRange,
		MaxByteRange: chunk.MaxByteRange,
		IsLeaf:       true,
	}
}

func hashBranch(left, right *MerkleNode) *MerkleNode {
	if right == nil {
		return left
	}
	return &MerkleNode{
		ID:           hashAll(left.ID, right.ID, noteBuffer(left.MaxByteRange)),
		ByteRange:    left.MaxByteRange,
		MinByteRange: left.MinByteRange,
		MaxByteRange: right.MaxByteRange,
		Left:         left,
		Right:        right,
	}
}

// BuildLayers pairs up adjacent nodes until a single root remains.
// An odd node at the end of a layer ascends unchanged.
func BuildLayers(nodes []*MerkleNode) (root *MerkleNode) {
	for len(nodes) > 1 {
		nextLayer := make([]*MerkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			var right *MerkleNode
			if i+1 < len(nodes) {
				right = nodes[i+1]
			}
			nextLayer = append(nextLayer, hashBranch(nodes[i], right))
		}
		nodes = nextLayer
	}
	return nodes[0]
}

// GenerateProofs walks the tree depth first, extending the record buffer
// at every branch and emitting one proof per leaf.
func GenerateProofs(root *MerkleNode) (proofs []*Proof) {
	return resolveProofs(root, nil)
}

func resolveProofs(node *MerkleNode, partial []byte) (proofs []*Proof) {
	if node.IsLeaf {
		record := make([]byte, 0, len(partial)+LEAF_RECORD_SIZE)
		record = append(record, partial...)
		record = append(record, node.DataHash...)
		record = append(record, noteBuffer(node.MaxByteRange)...)
		return []*Proof{{
			Offset: node.MaxByteRange - 1,
			Proof:  record,
		}}
	}

	record := make([]byte, 0, len(partial)+BRANCH_RECORD_SIZE)
	record = append(record, partial...)
	record = append(record, node.Left.ID...)
	record = append(record, node.Right.ID...)
	record = append(record, noteBuffer(node.ByteRange)...)

	proofs = append(proofs, resolveProofs(node.Left, record)...)
	proofs = append(proofs, resolveProofs(node.Right, record)...)
	return
}

// ValidateChunk checks a chunk's proof against the data root. The proof is
// consecutive 96 byte branch records followed by one 64 byte leaf record.
func ValidateChunk(rootId []byte, chunk Chunk, proof *Proof) (err error) {
	if len(proof.Proof) < LEAF_RECORD_SIZE ||
		(len(proof.Proof)-LEAF_RECORD_SIZE)%BRANCH_RECORD_SIZE != 0 {
		return ErrInvalidProof
	}

	expectedId := rootId
	branches := proof.Proof[:len(proof.Proof)-LEAF_RECORD_SIZE]
	leaf := proof.Proof[len(proof.Proof)-LEAF_RECORD_SIZE:]

	for len(branches) > 0 {
		leftId := branches[:HASH_SIZE]
		rightId := branches[HASH_SIZE : 2*HASH_SIZE]
		note := branches[2*HASH_SIZE : BRANCH_RECORD_SIZE]

		id := hashAll(leftId, rightId, note)
		if !bytes.Equal(id, expectedId) {
			return ErrInvalidProof
		}

		// Descend right of the pivot when the chunk ends past it
		if chunk.MaxByteRange > noteValue(note) {
			expectedId = rightId
		} else {
			expectedId = leftId
		}

		branches = branches[BRANCH_RECORD_SIZE:]
	}

	// The leaf id is recomputed from the chunk itself, the proof's leaf
	// record only has to agree on the data hash
	id := hashAll(chunk.DataHash, noteBuffer(chunk.MaxByteRange))
	if !bytes.Equal(id, expectedId) {
		return ErrInvalidProof
	}
	if !bytes.Equal(leaf[:HASH_SIZE], chunk.DataHash) {
		return ErrInvalidProof
	}

	return nil
}

// Offsets on the wire are 32 byte, zero padded, big endian
func noteBuffer(note int) []byte {
	encoder := NewEncoder()
	encoder.RawWriteSize(uint64(note), NOTE_SIZE)
	return encoder.Buffer.Bytes()
}

func noteValue(note []byte) int {
	var out int
	for _, b := range note {
		out = out*256 + int(b)
	}
	return out
}

// Each element is hashed separately, then the concatenation is hashed again
func hashAll(data ...[]byte) []byte {
	buf := make([]byte, 0, len(data)*HASH_SIZE)
	for _, d := range data {
		h := sha256.Sum256(d)
		buf = append(buf, h[:]...)
	}
	out := sha256.Sum256(buf)
	return out[:]
}
