package status

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/loader/src/utils/arweave"
)

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

type StoreTestSuite struct {
	suite.Suite

	store *Store
}

func (s *StoreTestSuite) SetupTest() {
	var err error
	s.store, err = NewStore(s.T().TempDir())
	s.NoError(err)
}

func (s *StoreTestSuite) fileStatus(path string, code Code) *Status {
	now := time.Now().UTC()
	return &Status{
		Id:           []byte(path + "-id-padding-padding-padding-pad")[:32],
		Status:       code,
		FilePath:     path,
		CreatedAt:    now,
		LastModified: now,
		Reward:       1000,
	}
}

func (s *StoreTestSuite) TestSaveLoadRoundTrip() {
	in := s.fileStatus("data/0.png", Submitted)
	err := s.store.SaveFileStatus(in)
	s.NoError(err)

	out, err := s.store.LoadFileStatus("data/0.png")
	s.NoError(err)
	s.Equal(in.Id, out.Id)
	s.Equal(Submitted, out.Status)
	s.Equal("data/0.png", out.FilePath)
	s.Equal(uint64(1000), out.Reward)
	s.Nil(out.Raw)
}

func (s *StoreTestSuite) TestFileNameIsPathHash() {
	in := s.fileStatus("data/0.png", Submitted)
	err := s.store.SaveFileStatus(in)
	s.NoError(err)

	_, err = os.Stat(filepath.Join(s.store.Dir(), PathKey("data/0.png")+".json"))
	s.NoError(err)
}

func (s *StoreTestSuite) TestMissingPath() {
	_, err := s.store.LoadFileStatus("data/never-uploaded.png")
	s.ErrorIs(err, ErrStatusNotFound)
}

func (s *StoreTestSuite) TestMissingFilePathRejected() {
	in := s.fileStatus("data/0.png", Submitted)
	in.FilePath = ""
	err := s.store.SaveFileStatus(in)
	s.ErrorIs(err, ErrMissingFilePath)
}

func (s *StoreTestSuite) TestResaveSamePathKeepsOneFile() {
	in := s.fileStatus("data/0.png", Submitted)
	err := s.store.SaveFileStatus(in)
	s.NoError(err)

	first, err := s.store.LoadFileStatus("data/0.png")
	s.NoError(err)

	in.Status = Pending
	in.LastModified = in.LastModified.Add(time.Second)
	err = s.store.SaveFileStatus(in)
	s.NoError(err)

	entries, err := os.ReadDir(s.store.Dir())
	s.NoError(err)
	s.Len(entries, 1)

	second, err := s.store.LoadFileStatus("data/0.png")
	s.NoError(err)
	s.Equal(Pending, second.Status)
	s.True(second.LastModified.After(first.LastModified))
}

func (s *StoreTestSuite) TestNoTempFilesLeftBehind() {
	for i := 0; i < 5; i++ {
		err := s.store.SaveFileStatus(s.fileStatus(fmt.Sprintf("data/%d.png", i), Submitted))
		s.NoError(err)
	}

	entries, err := os.ReadDir(s.store.Dir())
	s.NoError(err)
	s.Len(entries, 5)
	for _, entry := range entries {
		s.NotContains(entry.Name(), ".tmp-")
	}
}

func (s *StoreTestSuite) TestLoadForPathsSkipsMissing() {
	err := s.store.SaveFileStatus(s.fileStatus("data/0.png", Submitted))
	s.NoError(err)
	err = s.store.SaveFileStatus(s.fileStatus("data/2.png", Submitted))
	s.NoError(err)

	out, err := s.store.LoadForPaths([]string{"data/0.png", "data/1.png", "data/2.png"})
	s.NoError(err)
	s.Len(out, 2)
}

func (s *StoreTestSuite) TestLoadAllSortsByPath() {
	for _, path := range []string{"data/2.png", "data/0.png", "data/1.png"} {
		err := s.store.SaveFileStatus(s.fileStatus(path, Submitted))
		s.NoError(err)
	}

	out, err := s.store.LoadAll()
	s.NoError(err)
	s.Len(out, 3)
	s.Equal("data/0.png", out[0].FilePath)
	s.Equal("data/1.png", out[1].FilePath)
	s.Equal("data/2.png", out[2].FilePath)
}

func (s *StoreTestSuite) TestFilterByCode() {
	statuses := make([]*Status, 0, 10)
	for i := 0; i < 10; i++ {
		code := Pending
		if i >= 5 {
			code = Confirmed
		}
		status := s.fileStatus(fmt.Sprintf("data/%d.png", i), code)
		err := s.store.SaveFileStatus(status)
		s.NoError(err)
		statuses = append(statuses, status)
	}

	out := Filter(statuses, []Code{Confirmed}, nil)
	s.Len(out, 5)
	for _, status := range out {
		s.Equal(Confirmed, status.Status)
	}
}

func (s *StoreTestSuite) TestFilterByConfirmations() {
	deep := s.fileStatus("data/0.png", Confirmed)
	deep.Raw = &arweave.TxStatus{BlockHeight: 100, NumberOfConfirmations: 25}

	shallow := s.fileStatus("data/1.png", Confirmed)
	shallow.Raw = &arweave.TxStatus{BlockHeight: 120, NumberOfConfirmations: 5}

	// No raw status counts as zero confirmations
	fresh := s.fileStatus("data/2.png", Submitted)

	max := int64(10)
	out := Filter([]*Status{deep, shallow, fresh}, nil, &max)
	s.Len(out, 2)
	s.Equal("data/1.png", out[0].FilePath)
	s.Equal("data/2.png", out[1].FilePath)

	out = Filter([]*Status{deep, shallow, fresh}, []Code{Confirmed}, &max)
	s.Len(out, 1)
	s.Equal("data/1.png", out[0].FilePath)
}

func (s *StoreTestSuite) TestBundleStatusRoundTrip() {
	in := &BundleStatus{
		Status: Status{
			Id:           []byte("bundle-tx-id-padding-padding-pad")[:32],
			Status:       Submitted,
			CreatedAt:    time.Now().UTC(),
			LastModified: time.Now().UTC(),
			Reward:       5000,
		},
		NumberOfFiles: 2,
		DataSize:      1024,
		FilePaths: map[string]PathId{
			"0.png": {Id: []byte("item-id-0-padding-padding-paddin")[:32]},
			"1.png": {Id: []byte("item-id-1-padding-padding-paddin")[:32]},
		},
	}
	err := s.store.SaveBundleStatus(in)
	s.NoError(err)

	out, err := s.store.ListBundleStatuses()
	s.NoError(err)
	s.Len(out, 1)
	s.Equal(uint64(2), out[0].NumberOfFiles)
	s.Equal(uint64(1024), out[0].DataSize)
	s.Equal(in.FilePaths["0.png"].Id, out[0].FilePaths["0.png"].Id)
}

func (s *StoreTestSuite) TestBundleStatusRequiresId() {
	in := &BundleStatus{}
	err := s.store.SaveBundleStatus(in)
	s.ErrorIs(err, ErrMissingId)
}

func (s *StoreTestSuite) TestListBundleStatusesSkipsFileStatuses() {
	err := s.store.SaveFileStatus(s.fileStatus("data/0.png", Submitted))
	s.NoError(err)

	out, err := s.store.ListBundleStatuses()
	s.NoError(err)
	s.Empty(out)
}

func (s *StoreTestSuite) TestManifestRecordsAreNotStatuses() {
	err := s.store.SaveJson(manifestPrefix+"sometxid.json", map[string]string{"a": "b"})
	s.NoError(err)

	files, err := s.store.LoadAll()
	s.NoError(err)
	s.Empty(files)

	bundles, err := s.store.ListBundleStatuses()
	s.NoError(err)
	s.Empty(bundles)
}

func (s *StoreTestSuite) TestApply() {
	status := s.fileStatus("data/0.png", Submitted)

	err := status.Apply(&arweave.TxStatus{BlockHeight: 100, NumberOfConfirmations: 3}, nil)
	s.NoError(err)
	s.Equal(Confirmed, status.Status)
	s.Equal(int64(3), status.Confirmations())

	err = status.Apply(nil, arweave.ErrPending)
	s.NoError(err)
	s.Equal(Pending, status.Status)

	err = status.Apply(nil, arweave.ErrNotFound)
	s.NoError(err)
	s.Equal(NotFound, status.Status)

	err = status.Apply(nil, os.ErrDeadlineExceeded)
	s.Error(err)
}

func (s *StoreTestSuite) TestSummaryOrder() {
	statuses := []*Status{
		s.fileStatus("a", Submitted),
		s.fileStatus("b", Pending),
		s.fileStatus("c", Pending),
		s.fileStatus("d", NotFound),
		s.fileStatus("e", Confirmed),
	}

	summary := Summarize(statuses)
	s.Equal(1, summary.Submitted)
	s.Equal(2, summary.Pending)
	s.Equal(1, summary.NotFound)
	s.Equal(1, summary.Confirmed)
	s.Equal(5, summary.Total)

	s.Equal("Submitted: 1\nPending: 2\nNotFound: 1\nConfirmed: 1\nTotal: 5\n", summary.String())
}

func (s *StoreTestSuite) TestParseCode() {
	code, err := ParseCode("Confirmed")
	s.NoError(err)
	s.Equal(Confirmed, code)

	_, err = ParseCode("confirmed")
	s.ErrorIs(err, ErrUnknownStatusCode)
}
