package upload

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/monitoring"
	"github.com/warp-contracts/loader/src/utils/price"
	"github.com/warp-contracts/loader/src/utils/solana"
	"github.com/warp-contracts/loader/src/utils/wallet"
)

// Prices, signs and submits one transaction, chunks included.
// Both upload modes go through it.
type poster struct {
	client  *arweave.Client
	signer  *wallet.Wallet
	terms   price.Terms
	monitor monitoring.Monitor

	// Set when the upload is paid in SOL
	coSigner *solana.CoSigner
	payer    *solana.Keypair
}

// send fills in the reward and the anchor, signs and posts the header
// followed by all chunks. The header must be accepted before any chunk
// goes out. Chunks are posted concurrently, the first failure wins.
func (self *poster) send(ctx context.Context, tx *arweave.Transaction, data []byte) (reward uint64, err error) {
	errors := &self.monitor.GetReport().Uploader.Errors

	reward = self.terms.Price(uint64(len(data)))
	tx.Reward = arweave.BigIntFromInt64(int64(reward))

	anchor, err := self.client.GetTransactionAnchor(ctx)
	if err != nil {
		errors.AnchorError.Inc()
		return
	}
	tx.LastTx = anchor

	if self.coSigner != nil {
		_, err = self.coSigner.SignTransaction(ctx, tx, self.payer)
	} else {
		err = tx.Sign(self.signer)
	}
	if err != nil {
		errors.SigningError.Inc()
		return
	}

	err = self.client.SubmitTransaction(ctx, tx)
	if err != nil {
		errors.SubmitError.Inc()
		return
	}

	var wg sync.WaitGroup
	var failure atomic.Error
	for i := range tx.Chunks.Chunks {
		chunk, chunkErr := tx.GetChunk(i, data)
		if chunkErr != nil {
			err = chunkErr
			return
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			uploadErr := self.client.UploadChunk(ctx, chunk)
			if uploadErr != nil {
				errors.ChunkUploadError.Inc()
				failure.Store(uploadErr)
				return
			}
			self.monitor.GetReport().Uploader.State.ChunksUploaded.Inc()
		}()
	}
	wg.Wait()

	err = failure.Load()
	return
}
