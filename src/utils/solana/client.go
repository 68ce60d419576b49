package solana

import (
	"context"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/logger"
)

// Client talks JSON-RPC to a Solana node. Only the two calls the
// payment flow needs are implemented.
type Client struct {
	client *resty.Client
	log    *logrus.Entry
}

type rpcRequest struct {
	JsonRpc string        `json:"jsonrpc"`
	Id      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type balanceResponse struct {
	Error  *rpcError `json:"error"`
	Result struct {
		Value uint64 `json:"value"`
	} `json:"result"`
}

type blockhashResponse struct {
	Error  *rpcError `json:"error"`
	Result struct {
		Value struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	} `json:"result"`
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.log = logger.NewSublogger("solana-client")
	self.client = resty.New().
		SetBaseURL(config.Solana.RpcUrl).
		SetTimeout(config.Solana.RequestTimeout).
		SetHeader("Content-Type", "application/json")
	return
}

func (self *Client) call(ctx context.Context, method string, params []interface{}, result interface{}) (err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetBody(rpcRequest{JsonRpc: "2.0", Id: 1, Method: method, Params: params}).
		SetResult(result).
		ForceContentType("application/json").
		Post("")
	if err != nil {
		return
	}
	if resp.IsError() {
		err = ErrRpc
	}
	return
}

// GetBalance returns the lamports held by the address
func (self *Client) GetBalance(ctx context.Context, address string) (out uint64, err error) {
	response := new(balanceResponse)
	err = self.call(ctx, "getBalance", []interface{}{address}, response)
	if err != nil {
		return
	}
	if response.Error != nil {
		self.log.WithField("code", response.Error.Code).Error(response.Error.Message)
		err = ErrRpc
		return
	}

	out = response.Result.Value
	return
}

// GetLatestBlockhash returns a recent blockhash new transactions
// can reference
func (self *Client) GetLatestBlockhash(ctx context.Context) (out string, err error) {
	response := new(blockhashResponse)
	err = self.call(ctx, "getLatestBlockhash", nil, response)
	if err != nil {
		return
	}
	if response.Error != nil {
		self.log.WithField("code", response.Error.Code).Error(response.Error.Message)
		err = ErrRpc
		return
	}

	out = response.Result.Value.Blockhash
	if out == "" {
		err = ErrRpc
	}
	return
}
