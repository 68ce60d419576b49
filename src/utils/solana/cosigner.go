package solana

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/logger"
)

// CoSigner pays for uploads in SOL. The service receives the unsigned
// transaction together with a signed payment and answers with its own
// owner and signature, which get grafted onto the transaction.
type CoSigner struct {
	client *resty.Client
	rpc    *Client
	config *config.Config
	log    *logrus.Entry
}

type signRequest struct {
	Transaction *arweave.Transaction `json:"transaction"`

	// Signed transfer covering the service's fee, base64 encoded
	Payment string `json:"payment"`
}

type SignResponse struct {
	ArTxSig   arweave.Base64String `json:"ar_tx_sig"`
	ArTxId    arweave.Base64String `json:"ar_tx_id"`
	ArTxOwner arweave.Base64String `json:"ar_tx_owner"`
	SolTxSig  string               `json:"sol_tx_sig"`
	Lamports  uint64               `json:"lamports"`
}

func NewCoSigner(config *config.Config) (self *CoSigner) {
	self = new(CoSigner)
	self.config = config
	self.rpc = NewClient(config)
	self.log = logger.NewSublogger("co-signer")
	self.client = resty.New().
		SetBaseURL(config.Solana.CoSignerUrl).
		SetTimeout(config.Solana.RequestTimeout).
		SetHeader("Content-Type", "application/json")
	return
}

// SignTransaction pays for the transaction in SOL and fills in the
// service's owner, signature and id. Reward must already be set, it
// decides the payment size.
func (self *CoSigner) SignTransaction(ctx context.Context, tx *arweave.Transaction, payer *Keypair) (lamports uint64, err error) {
	if self.config.Solana.PaymentAddress == "" {
		err = ErrMissingPaymentAddress
		return
	}

	lamports = LamportsForWinstons(tx.Reward.Uint64())

	balance, err := self.rpc.GetBalance(ctx, payer.Address())
	if err != nil {
		return
	}
	if balance < lamports {
		err = ErrInsufficientFunds
		return
	}

	blockhash, err := self.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return
	}

	payment, err := BuildTransfer(payer, self.config.Solana.PaymentAddress, lamports, blockhash)
	if err != nil {
		return
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(signRequest{
			Transaction: tx,
			Payment:     base64.StdEncoding.EncodeToString(payment),
		}).
		SetResult(SignResponse{}).
		ForceContentType("application/json").
		Post("/sign")
	if err != nil {
		return
	}
	if resp.IsError() {
		self.log.WithField("status", resp.StatusCode()).Error("Co-signing rejected")
		err = ErrCoSigner
		return
	}

	response, ok := resp.Result().(*SignResponse)
	if !ok {
		err = ErrCoSigner
		return
	}

	err = self.apply(tx, response)
	return
}

// apply validates the response and grafts it onto the transaction.
// The signed digest covers the service's owner, so a full signature
// check is possible only after the graft.
func (self *CoSigner) apply(tx *arweave.Transaction, response *SignResponse) (err error) {
	id := sha256.Sum256(response.ArTxSig)
	if !bytes.Equal(response.ArTxId, id[:]) {
		return ErrCoSigner
	}

	tx.Owner = response.ArTxOwner
	tx.Signature = response.ArTxSig
	tx.ID = response.ArTxId

	err = tx.Verify()
	if err != nil {
		return ErrCoSigner
	}
	return
}
