package upload

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/jwk"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/bundlr"
	"github.com/warp-contracts/loader/src/utils/config"
	"github.com/warp-contracts/loader/src/utils/status"
)

func TestPipelineTestSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

// Runs whole upload pipelines against a stubbed node
type PipelineTestSuite struct {
	suite.Suite

	server     *httptest.Server
	walletPath string

	submitted   chan *arweave.Transaction
	chunks      chan *arweave.ChunkUpload
	anchorCalls atomic.Int64
	failTx      atomic.Bool
}

func (s *PipelineTestSuite) SetupSuite() {
	key, err := rsa.GenerateKey(rand.Reader, 4096)
	require.Nil(s.T(), err)

	jwkKey, err := jwk.New(key)
	require.Nil(s.T(), err)
	jwkJson, err := json.Marshal(jwkKey)
	require.Nil(s.T(), err)

	s.walletPath = filepath.Join(s.T().TempDir(), "wallet.json")
	require.Nil(s.T(), os.WriteFile(s.walletPath, jwkJson, 0o600))

	s.server = httptest.NewServer(http.HandlerFunc(s.handle))
}

func (s *PipelineTestSuite) TearDownSuite() {
	s.server.Close()
}

func (s *PipelineTestSuite) SetupTest() {
	s.submitted = make(chan *arweave.Transaction, 100)
	s.chunks = make(chan *arweave.ChunkUpload, 100)
	s.anchorCalls.Store(0)
	s.failTx.Store(false)
}

func (s *PipelineTestSuite) handle(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/price/262144":
		_, _ = w.Write([]byte("1000"))
	case r.URL.Path == "/price/524288":
		_, _ = w.Write([]byte("1600"))
	case r.URL.Path == "/tx_anchor":
		s.anchorCalls.Inc()
		anchor := base64.RawURLEncoding.EncodeToString(bytes.Repeat([]byte{3}, 48))
		_, _ = w.Write([]byte(anchor))
	case r.URL.Path == "/tx" && r.Method == http.MethodPost:
		if s.failTx.Load() {
			http.Error(w, "invalid transaction", http.StatusBadRequest)
			return
		}
		tx := new(arweave.Transaction)
		if err := json.NewDecoder(r.Body).Decode(tx); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.submitted <- tx
		_, _ = w.Write([]byte("OK"))
	case r.URL.Path == "/chunk" && r.Method == http.MethodPost:
		chunk := new(arweave.ChunkUpload)
		if err := json.NewDecoder(r.Body).Decode(chunk); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.chunks <- chunk
		_, _ = w.Write([]byte("OK"))
	default:
		http.NotFound(w, r)
	}
}

func (s *PipelineTestSuite) config(logDir string) (cfg *config.Config) {
	cfg = config.Default()
	cfg.Arweave.NodeUrl = s.server.URL
	cfg.Arweave.LimiterInterval = time.Millisecond
	cfg.Arweave.LimiterBurstSize = 1000
	cfg.Uploader.KeyPairPath = s.walletPath
	cfg.Uploader.LogDir = logDir
	cfg.Uploader.StatusFlushInterval = 10 * time.Millisecond
	cfg.StopTimeout = 10 * time.Second
	return
}

func (s *PipelineTestSuite) file(dir, name string, size int) string {
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, bytes.Repeat([]byte{'x'}, size), 0o644)
	require.Nil(s.T(), err)
	return path
}

func (s *PipelineTestSuite) run(cfg *config.Config, options *Options) (uploads []*Upload) {
	controller, err := NewController(cfg, options)
	require.Nil(s.T(), err)
	require.Nil(s.T(), controller.Start())

	for upload := range controller.Output {
		uploads = append(uploads, upload)
	}
	controller.StopWait()
	return
}

func (s *PipelineTestSuite) drainSubmitted() (out []*arweave.Transaction) {
	for {
		select {
		case tx := <-s.submitted:
			out = append(out, tx)
		default:
			return
		}
	}
}

func (s *PipelineTestSuite) drainChunks() (out []*arweave.ChunkUpload) {
	for {
		select {
		case chunk := <-s.chunks:
			out = append(out, chunk)
		default:
			return
		}
	}
}

func (s *PipelineTestSuite) TestUploadFiles() {
	dir := s.T().TempDir()
	small := s.file(dir, "small.bin", 10)
	medium := s.file(dir, "medium.bin", 20)
	// Two chunks worth of data
	large := s.file(dir, "large.bin", 300000)
	logDir := filepath.Join(dir, "statuses")

	// A single worker keeps the anchor cache assertion deterministic
	cfg := s.config(logDir)
	cfg.Uploader.NumWorkers = 1

	uploads := s.run(cfg, &Options{
		Paths: []string{small, medium, large},
	})

	require.Len(s.T(), uploads, 3)
	byPath := make(map[string]*status.Status)
	for _, upload := range uploads {
		require.False(s.T(), upload.Failed())
		require.NotNil(s.T(), upload.File)
		require.Equal(s.T(), status.Submitted, upload.File.Status)
		require.NotEmpty(s.T(), []byte(upload.File.Id))
		byPath[upload.File.FilePath] = upload.File
	}
	require.Len(s.T(), byPath, 3)

	// One chunk costs the base fee, every next one the incremental fee
	require.EqualValues(s.T(), 1000, byPath[small].Reward)
	require.EqualValues(s.T(), 1000, byPath[medium].Reward)
	require.EqualValues(s.T(), 1600, byPath[large].Reward)

	submitted := s.drainSubmitted()
	require.Len(s.T(), submitted, 3)
	for _, tx := range submitted {
		require.Equal(s.T(), 2, tx.Format)
		require.Equal(s.T(), "0", tx.Quantity.String())
		require.Nil(s.T(), tx.Verify())
	}

	require.Len(s.T(), s.drainChunks(), 4)

	// The anchor is fetched once and cached for the whole run
	require.EqualValues(s.T(), 1, s.anchorCalls.Load())

	// Journal on disk matches what the pipeline reported
	store, err := status.NewStore(logDir)
	require.Nil(s.T(), err)
	all, err := store.LoadAll()
	require.Nil(s.T(), err)
	require.Len(s.T(), all, 3)

	saved, err := store.LoadFileStatus(small)
	require.Nil(s.T(), err)
	require.Equal(s.T(), byPath[small].Id, saved.Id)
	require.Equal(s.T(), status.Submitted, saved.Status)
}

func (s *PipelineTestSuite) TestUploadBundle() {
	dir := s.T().TempDir()
	paths := []string{
		s.file(dir, "a.bin", 100),
		s.file(dir, "b.bin", 200),
		s.file(dir, "c.bin", 300),
	}
	logDir := filepath.Join(dir, "statuses")

	uploads := s.run(s.config(logDir), &Options{
		Paths:  paths,
		Bundle: true,
		Tags:   []bundlr.Tag{{Name: "App-Name", Value: "loader-test"}},
	})

	require.Len(s.T(), uploads, 1)
	bundle := uploads[0].Bundle
	require.False(s.T(), uploads[0].Failed())
	require.NotNil(s.T(), bundle)
	require.Equal(s.T(), status.Submitted, bundle.Status.Status)
	require.EqualValues(s.T(), 3, bundle.NumberOfFiles)
	require.EqualValues(s.T(), 600, bundle.DataSize)
	require.Len(s.T(), bundle.FilePaths, 3)
	for _, path := range paths {
		require.NotEmpty(s.T(), []byte(bundle.FilePaths[path].Id))
	}

	submitted := s.drainSubmitted()
	require.Len(s.T(), submitted, 1)
	tx := submitted[0]
	require.Nil(s.T(), tx.Verify())
	require.Equal(s.T(), []byte(bundle.Id), []byte(tx.ID))

	tags := make(map[string]string)
	for _, tag := range tx.Tags {
		tags[string(tag.Name)] = string(tag.Value)
	}
	require.Equal(s.T(), "binary", tags["Bundle-Format"])
	require.Equal(s.T(), "2.0.0", tags["Bundle-Version"])

	// The posted payload parses back into the very same items
	chunks := s.drainChunks()
	require.Len(s.T(), chunks, 1)
	parsed := new(bundlr.Bundle)
	require.Nil(s.T(), parsed.Unmarshal(chunks[0].Chunk))
	require.Len(s.T(), parsed.Items, 3)
	for i := range parsed.Items {
		require.Nil(s.T(), parsed.Items[i].Verify())
	}

	// Bundle statuses live next to file statuses but never mix with them
	store, err := status.NewStore(logDir)
	require.Nil(s.T(), err)
	all, err := store.LoadAll()
	require.Nil(s.T(), err)
	require.Empty(s.T(), all)

	bundles, err := store.ListBundleStatuses()
	require.Nil(s.T(), err)
	require.Len(s.T(), bundles, 1)
	require.Equal(s.T(), bundle.Id, bundles[0].Id)
	require.EqualValues(s.T(), 3, bundles[0].NumberOfFiles)
}

func (s *PipelineTestSuite) TestRejectedSubmitReported() {
	s.failTx.Store(true)

	dir := s.T().TempDir()
	path := s.file(dir, "a.bin", 10)
	logDir := filepath.Join(dir, "statuses")

	uploads := s.run(s.config(logDir), &Options{Paths: []string{path}})

	require.Len(s.T(), uploads, 1)
	require.True(s.T(), uploads[0].Failed())
	require.NotNil(s.T(), uploads[0].Err)
	require.Nil(s.T(), uploads[0].File)

	require.Empty(s.T(), s.drainSubmitted())

	// Failures never make it into the journal
	store, err := status.NewStore(logDir)
	require.Nil(s.T(), err)
	all, err := store.LoadAll()
	require.Nil(s.T(), err)
	require.Empty(s.T(), all)
}

func (s *PipelineTestSuite) TestMissingFileReported() {
	dir := s.T().TempDir()
	ok := s.file(dir, "ok.bin", 10)
	missing := filepath.Join(dir, "no-such-file.bin")

	uploads := s.run(s.config(""), &Options{Paths: []string{missing, ok}})

	require.Len(s.T(), uploads, 2)
	byPath := make(map[string]*Upload)
	for _, upload := range uploads {
		byPath[upload.Paths[0]] = upload
	}
	require.True(s.T(), byPath[missing].Failed())
	require.False(s.T(), byPath[ok].Failed())
	require.Equal(s.T(), ok, byPath[ok].File.FilePath)

	require.Len(s.T(), s.drainSubmitted(), 1)
}
