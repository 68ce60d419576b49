package manifest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/status"
)

func TestManifestTestSuite(t *testing.T) {
	suite.Run(t, new(ManifestTestSuite))
}

type ManifestTestSuite struct {
	suite.Suite
}

func (s *ManifestTestSuite) bundleStatus(paths map[string]string) *status.BundleStatus {
	filePaths := make(map[string]status.PathId, len(paths))
	var size uint64
	for path, id := range paths {
		filePaths[path] = status.PathId{Id: []byte(id + "-padding-padding-padding-padding")[:32]}
		size += 100
	}
	return &status.BundleStatus{
		Status: status.Status{
			Id:           []byte("bundle-id-padding-padding-paddin")[:32],
			Status:       status.Confirmed,
			CreatedAt:    time.Now().UTC(),
			LastModified: time.Now().UTC(),
		},
		NumberOfFiles: uint64(len(paths)),
		DataSize:      size,
		FilePaths:     filePaths,
	}
}

func (s *ManifestTestSuite) TestFromBundleStatuses() {
	statuses := []*status.BundleStatus{
		s.bundleStatus(map[string]string{"data/0.png": "id0", "data/1.png": "id1"}),
		s.bundleStatus(map[string]string{"data/2.png": "id2"}),
	}

	manifest, err := FromBundleStatuses(statuses, "data/")
	s.NoError(err)
	s.Equal(ManifestType, manifest.Manifest)
	s.Equal(ManifestVersion, manifest.Version)
	s.Len(manifest.Paths, 3)
	s.Contains(manifest.Paths, "0.png")
	s.Contains(manifest.Paths, "1.png")
	s.Contains(manifest.Paths, "2.png")
	s.Equal([]string{"0.png", "1.png", "2.png"}, manifest.SortedPaths())
}

func (s *ManifestTestSuite) TestTrailingSlashRequired() {
	statuses := []*status.BundleStatus{
		s.bundleStatus(map[string]string{"data/0.png": "id0"}),
	}

	_, err := FromBundleStatuses(statuses, "data")
	s.ErrorIs(err, ErrMissingTrailingSlash)

	// Empty base keeps paths as they are
	manifest, err := FromBundleStatuses(statuses, "")
	s.NoError(err)
	s.Contains(manifest.Paths, "data/0.png")
}

func (s *ManifestTestSuite) TestNoStatuses() {
	_, err := FromBundleStatuses(nil, "data/")
	s.ErrorIs(err, ErrNoBundleStatusesFound)
}

func (s *ManifestTestSuite) TestSerializedShape() {
	manifest, err := FromBundleStatuses([]*status.BundleStatus{
		s.bundleStatus(map[string]string{"data/0.png": "id0"}),
	}, "data/")
	s.NoError(err)

	data, err := manifest.Serialize()
	s.NoError(err)

	var decoded map[string]json.RawMessage
	err = json.Unmarshal(data, &decoded)
	s.NoError(err)
	s.JSONEq(`"arweave/paths"`, string(decoded["manifest"]))
	s.JSONEq(`"0.1.0"`, string(decoded["version"]))

	var paths map[string]map[string]string
	err = json.Unmarshal(decoded["paths"], &paths)
	s.NoError(err)
	s.Len(paths["0.png"], 1)
	s.NotEmpty(paths["0.png"]["id"])
}

func (s *ManifestTestSuite) TestRecordUrls() {
	manifest, err := FromBundleStatuses([]*status.BundleStatus{
		s.bundleStatus(map[string]string{"data/1.png": "id1", "data/0.png": "id0"}),
	}, "data/")
	s.NoError(err)

	manifestTxId := arweave.Base64String([]byte("manifest-tx-id-padding-padding-p")[:32])
	record := NewRecord("https://arweave.net/", manifestTxId, manifest)

	s.Len(record.RelativePaths, 2)
	s.Len(record.IdPaths, 2)
	s.Equal("https://arweave.net/"+manifestTxId.Base64()+"/0.png", record.RelativePaths[0])
	s.Equal("https://arweave.net/"+manifestTxId.Base64()+"/1.png", record.RelativePaths[1])
	s.Equal("https://arweave.net/"+manifest.Paths["0.png"].Id.Base64(), record.IdPaths[0])
	s.Equal("https://arweave.net/"+manifest.Paths["1.png"].Id.Base64(), record.IdPaths[1])
}

func (s *ManifestTestSuite) TestRecordRoundTrip() {
	store, err := status.NewStore(s.T().TempDir())
	s.NoError(err)

	manifestTxId := arweave.Base64String([]byte("manifest-tx-id-padding-padding-p")[:32])
	in := &Record{
		RelativePaths: []string{"https://arweave.net/tx/0.png"},
		IdPaths:       []string{"https://arweave.net/id0"},
	}

	err = SaveRecord(store, manifestTxId, in)
	s.NoError(err)

	out, err := LoadRecord(store, manifestTxId)
	s.NoError(err)
	s.Equal(in.RelativePaths, out.RelativePaths)
	s.Equal(in.IdPaths, out.IdPaths)
}

func (s *ManifestTestSuite) TestRecordNotFound() {
	store, err := status.NewStore(s.T().TempDir())
	s.NoError(err)

	_, err = LoadRecord(store, arweave.Base64String("missing"))
	s.ErrorIs(err, ErrManifestNotFound)
}
