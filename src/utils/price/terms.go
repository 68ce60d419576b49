package price

import (
	"context"

	"github.com/warp-contracts/loader/src/utils/arweave"
)

// Winstons in one AR token
const WINSTONS_PER_AR = 1_000_000_000_000

// Terms is the fee schedule derived from two network quotes,
// already scaled by the reward multiplier
type Terms struct {
	Base        uint64
	Incremental uint64
}

// GetTerms quotes the network for one and two chunks. The difference
// between the quotes is the marginal price of each extra chunk.
func GetTerms(ctx context.Context, client *arweave.Client, multiplier float64) (out Terms, err error) {
	if multiplier <= 0 || multiplier >= 10 {
		err = ErrMultiplierOutOfRange
		return
	}

	oneChunk, err := client.GetPrice(ctx, arweave.MAX_CHUNK_SIZE)
	if err != nil {
		return
	}

	twoChunks, err := client.GetPrice(ctx, 2*arweave.MAX_CHUNK_SIZE)
	if err != nil {
		return
	}

	out.Base = uint64(float64(oneChunk.Uint64()) * multiplier)
	out.Incremental = uint64(float64(twoChunks.Uint64())*multiplier) - out.Base
	return
}

// Price of storing the given number of bytes, in winstons.
// The network charges per started chunk, with the first chunk
// priced differently than the rest.
func (self Terms) Price(bytes uint64) uint64 {
	chunks := (bytes + arweave.MAX_CHUNK_SIZE - 1) / arweave.MAX_CHUNK_SIZE
	if chunks < 1 {
		chunks = 1
	}
	return self.Base + self.Incremental*(chunks-1)
}

// Sum of per-file prices, each file paying its own base fee
func (self Terms) PricePerFile(sizes []uint64) (out uint64) {
	for _, size := range sizes {
		out += self.Price(size)
	}
	return
}

// Price of shipping all files in a single bundle transaction
func (self Terms) PriceBundled(sizes []uint64) uint64 {
	var total uint64
	for _, size := range sizes {
		total += size
	}
	return self.Price(total)
}
