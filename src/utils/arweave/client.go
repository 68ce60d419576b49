package arweave

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/warp-contracts/loader/src/utils/config"

	"github.com/patrickmn/go-cache"
)

const anchorCacheKey = "anchor"

type Client struct {
	*BaseClient

	// Anchors stay valid for ~25 blocks, no need to fetch one per transaction
	anchors *cache.Cache
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.BaseClient = newBaseClient(config)
	self.anchors = cache.New(config.Arweave.AnchorCacheTTL, time.Minute)
	return
}

// https://docs.arweave.org/developers/server/http-api#network-info
func (self *Client) GetNetworkInfo(ctx context.Context) (out *NetworkInfo, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&NetworkInfo{}).
		Get("/info")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*NetworkInfo)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// https://docs.arweave.org/developers/server/http-api#peer-list
func (self *Client) GetPeerList(ctx context.Context) (out []string, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult([]string{}).
		Get("/peers")
	if err != nil {
		return
	}

	peers, ok := resp.Result().(*[]string)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return *peers, nil
}

func (self *Client) CheckPeerConnection(ctx context.Context, peer string) (out *NetworkInfo, duration time.Duration, err error) {
	// Disable retrying request with different peer
	ctx = context.WithValue(ctx, ContextDisablePeers, true)
	ctx = context.WithValue(ctx, ContextForcePeer, peer)

	// Set timeout
	ctx, cancel := context.WithTimeout(ctx, self.config.Arweave.CheckPeerTimeout)
	defer cancel()

	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&NetworkInfo{}).
		Get("/info")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*NetworkInfo)
	if !ok {
		err = ErrFailedToParse
		return
	}

	duration = resp.Time()

	return
}

// Price of uploading data, in winstons
// https://docs.arweave.org/developers/server/http-api#transaction-price
func (self *Client) GetPrice(ctx context.Context, bytes int) (out BigInt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("bytes", strconv.Itoa(bytes)).
		Get("/price/{bytes}")
	if err != nil {
		return
	}

	_, ok := out.SetString(strings.TrimSpace(string(resp.Body())), 10)
	if !ok {
		err = ErrFailedToParse
		return
	}
	out.Valid = true

	return
}

// Wallet balance in winstons
// https://docs.arweave.org/developers/server/http-api#wallet-balance
func (self *Client) GetWalletBalance(ctx context.Context, address string) (out BigInt, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetPathParam("address", address).
		Get("/wallet/{address}/balance")
	if err != nil {
		return
	}

	_, ok := out.SetString(strings.TrimSpace(string(resp.Body())), 10)
	if !ok {
		err = ErrFailedToParse
		return
	}
	out.Valid = true

	return
}

// Anchor for new transactions, cached between calls
// https://docs.arweave.org/developers/server/http-api#transaction-anchor
func (self *Client) GetTransactionAnchor(ctx context.Context) (out Base64String, err error) {
	cached, ok := self.anchors.Get(anchorCacheKey)
	if ok {
		return cached.(Base64String), nil
	}

	resp, err := self.client.R().
		SetContext(ctx).
		Get("/tx_anchor")
	if err != nil {
		return
	}

	out, err = Base64StringFromBase64(strings.TrimSpace(string(resp.Body())))
	if err != nil {
		err = ErrFailedToParse
		return
	}

	self.anchors.SetDefault(anchorCacheKey, out)

	return
}

// https://docs.arweave.org/developers/server/http-api#get-transaction-by-id
func (self *Client) GetTransactionById(ctx context.Context, id string) (out *Transaction, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&Transaction{}).
		SetPathParam("id", id).
		Get("/tx/{id}")
	if err != nil {
		return
	}

	out, ok := resp.Result().(*Transaction)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Confirmation status of a submitted transaction.
// Returns ErrPending when the transaction still waits to be mined
// and ErrNotFound when the node doesn't know about it.
// https://docs.arweave.org/developers/server/http-api#get-transaction-status
func (self *Client) GetTransactionStatus(ctx context.Context, id string) (out *TxStatus, err error) {
	// A missing transaction on one peer is a meaningful answer, not a node failure
	ctx = context.WithValue(ctx, ContextDisablePeers, true)

	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(&TxStatus{}).
		SetPathParam("id", id).
		Get("/tx/{id}/status")
	if resp != nil {
		switch resp.StatusCode() {
		case http.StatusAccepted:
			return nil, ErrPending
		case http.StatusNotFound:
			return nil, ErrNotFound
		}
	}
	if err != nil {
		return
	}

	out, ok := resp.Result().(*TxStatus)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return
}

// Ids of transactions waiting in the mempool
// https://docs.arweave.org/developers/server/http-api#get-pending-transactions
func (self *Client) GetPendingTransactions(ctx context.Context) (out []string, err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult([]string{}).
		Get("/tx/pending")
	if err != nil {
		return
	}

	ids, ok := resp.Result().(*[]string)
	if !ok {
		err = ErrFailedToParse
		return
	}

	return *ids, nil
}

// Submits a signed transaction. Data is uploaded separately in chunks.
// https://docs.arweave.org/developers/server/http-api#submit-a-transaction
func (self *Client) SubmitTransaction(ctx context.Context, tx *Transaction) (err error) {
	if !tx.IsSigned() {
		return ErrUnsignedTransaction
	}

	_, err = self.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tx).
		Post("/tx")

	return
}

// Uploads one chunk of a transaction's data together with its inclusion proof
// https://docs.arweave.org/developers/server/http-api#upload-chunks
func (self *Client) UploadChunk(ctx context.Context, chunk *ChunkUpload) (err error) {
	_, err = self.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chunk).
		Post("/chunk")

	return
}
