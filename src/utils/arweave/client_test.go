package arweave

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/loader/src/utils/config"
	"go.uber.org/atomic"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	server      *httptest.Server
	client      *Client
	anchorCalls *atomic.Int64
	submitCalls *atomic.Int64
	ctx         context.Context
}

func (s *ClientTestSuite) SetupTest() {
	s.anchorCalls = atomic.NewInt64(0)
	s.submitCalls = atomic.NewInt64(0)
	s.ctx = context.Background()

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/info":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"network":"arweave.N.1","version":5,"height":1000000,"blocks":1000001,"peers":100}`))
		case "/peers":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`["127.0.0.1:1984","10.0.0.1:1984"]`))
		case "/price/2048":
			_, _ = w.Write([]byte("1234567"))
		case "/wallet/abc/balance":
			_, _ = w.Write([]byte("500000"))
		case "/tx_anchor":
			s.anchorCalls.Inc()
			_, _ = w.Write([]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"))
		case "/tx/pending":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`["tx1","tx2","tx3"]`))
		case "/tx/confirmed1/status":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"block_height":1000000,"block_indep_hash":"aGFzaA","number_of_confirmations":25}`))
		case "/tx/pending1/status":
			w.WriteHeader(http.StatusAccepted)
			_, _ = w.Write([]byte("Pending"))
		case "/tx/missing1/status":
			w.WriteHeader(http.StatusNotFound)
		case "/tx":
			s.submitCalls.Inc()
			var tx Transaction
			err := json.NewDecoder(r.Body).Decode(&tx)
			if err != nil || !tx.IsSigned() {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte("OK"))
		case "/chunk":
			var chunk ChunkUpload
			err := json.NewDecoder(r.Body).Decode(&chunk)
			if err != nil || len(chunk.DataRoot) == 0 || chunk.DataSize == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte("OK"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	cfg := config.Default()
	cfg.Arweave.NodeUrl = s.server.URL
	cfg.Arweave.LimiterInterval = time.Millisecond
	cfg.Arweave.LimiterBurstSize = 1000

	s.client = NewClient(cfg)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *ClientTestSuite) TestGetNetworkInfo() {
	info, err := s.client.GetNetworkInfo(s.ctx)
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1000000, info.Height)
	require.Equal(s.T(), "arweave.N.1", info.Network)
}

func (s *ClientTestSuite) TestGetPeerList() {
	peers, err := s.client.GetPeerList(s.ctx)
	require.Nil(s.T(), err)
	require.Len(s.T(), peers, 2)
}

func (s *ClientTestSuite) TestGetPrice() {
	price, err := s.client.GetPrice(s.ctx, 2048)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "1234567", price.String())
}

func (s *ClientTestSuite) TestGetWalletBalance() {
	balance, err := s.client.GetWalletBalance(s.ctx, "abc")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "500000", balance.String())
}

func (s *ClientTestSuite) TestGetTransactionAnchorIsCached() {
	anchor, err := s.client.GetTransactionAnchor(s.ctx)
	require.Nil(s.T(), err)
	require.NotEmpty(s.T(), anchor)

	again, err := s.client.GetTransactionAnchor(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), anchor, again)
	require.EqualValues(s.T(), 1, s.anchorCalls.Load())
}

func (s *ClientTestSuite) TestGetTransactionStatus() {
	status, err := s.client.GetTransactionStatus(s.ctx, "confirmed1")
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1000000, status.BlockHeight)
	require.EqualValues(s.T(), 25, status.NumberOfConfirmations)
	require.Equal(s.T(), "hash", string(status.BlockIndepHash))

	_, err = s.client.GetTransactionStatus(s.ctx, "pending1")
	require.ErrorIs(s.T(), err, ErrPending)

	_, err = s.client.GetTransactionStatus(s.ctx, "missing1")
	require.ErrorIs(s.T(), err, ErrNotFound)
}

func (s *ClientTestSuite) TestGetPendingTransactions() {
	ids, err := s.client.GetPendingTransactions(s.ctx)
	require.Nil(s.T(), err)
	require.Equal(s.T(), []string{"tx1", "tx2", "tx3"}, ids)
}

func (s *ClientTestSuite) TestSubmitTransaction() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)
	signer := &rsaSigner{key: key}

	tx := NewTransaction([]byte("payload"), nil, Base64String{}, nil)
	tx.Reward = BigIntFromInt64(1)
	tx.LastTx = Base64String("anchor")

	// Unsigned transactions are rejected before any request is made
	err = s.client.SubmitTransaction(s.ctx, tx)
	require.ErrorIs(s.T(), err, ErrUnsignedTransaction)
	require.EqualValues(s.T(), 0, s.submitCalls.Load())

	err = tx.Sign(signer)
	require.Nil(s.T(), err)

	err = s.client.SubmitTransaction(s.ctx, tx)
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1, s.submitCalls.Load())
}

func (s *ClientTestSuite) TestUploadChunk() {
	data := make([]byte, MAX_CHUNK_SIZE+MIN_CHUNK_SIZE)

	tx := NewTransaction(data, nil, Base64String{}, nil)
	chunk, err := tx.GetChunk(0, data)
	require.Nil(s.T(), err)

	err = s.client.UploadChunk(s.ctx, chunk)
	require.Nil(s.T(), err)
}

func (s *ClientTestSuite) brokenNodeClient() *Client {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	s.T().Cleanup(broken.Close)

	cfg := config.Default()
	cfg.Arweave.NodeUrl = broken.URL
	cfg.Arweave.LimiterInterval = time.Millisecond
	cfg.Arweave.LimiterBurstSize = 1000

	return NewClient(cfg)
}

func (s *ClientTestSuite) TestPeerFallback() {
	client := s.brokenNodeClient()

	// Without peers the failure is final
	_, err := client.GetNetworkInfo(s.ctx)
	require.ErrorIs(s.T(), err, ErrBadResponse)

	// With a healthy peer set up the request is retried there
	client.SetPeers([]string{s.server.URL})
	info, err := client.GetNetworkInfo(s.ctx)
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1000000, info.Height)
}

func (s *ClientTestSuite) TestCheckPeerConnection() {
	client := s.brokenNodeClient()

	info, duration, err := client.CheckPeerConnection(s.ctx, s.server.URL)
	require.Nil(s.T(), err)
	require.EqualValues(s.T(), 1000000, info.Height)
	require.Greater(s.T(), duration, time.Duration(0))
}
