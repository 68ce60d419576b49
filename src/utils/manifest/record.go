package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/warp-contracts/loader/src/utils/arweave"
	"github.com/warp-contracts/loader/src/utils/status"
)

const recordPrefix = "manifest_"

// Record lists the gateway URLs of an uploaded manifest. Both lists
// share the same order, one entry per path.
type Record struct {
	// Files addressed through the manifest transaction
	RelativePaths []string `json:"relative_paths"`

	// Files addressed by their own data item id
	IdPaths []string `json:"id_paths"`
}

// NewRecord builds the URL lists for a manifest stored under
// manifestTxId, resolved against the given gateway
func NewRecord(gatewayUrl string, manifestTxId arweave.Base64String, manifest *Manifest) (self *Record) {
	base := strings.TrimSuffix(gatewayUrl, "/")
	paths := manifest.SortedPaths()

	self = &Record{
		RelativePaths: make([]string, 0, len(paths)),
		IdPaths:       make([]string, 0, len(paths)),
	}
	for _, path := range paths {
		self.RelativePaths = append(self.RelativePaths, base+"/"+manifestTxId.Base64()+"/"+path)
		self.IdPaths = append(self.IdPaths, base+"/"+manifest.Paths[path].Id.Base64())
	}
	return
}

func SaveRecord(store *status.Store, manifestTxId arweave.Base64String, record *Record) error {
	return store.SaveJson(recordPrefix+manifestTxId.Base64()+".json", record)
}

func LoadRecord(store *status.Store, manifestTxId arweave.Base64String) (out *Record, err error) {
	data, err := os.ReadFile(filepath.Join(store.Dir(), recordPrefix+manifestTxId.Base64()+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrManifestNotFound
		}
		return
	}

	out = new(Record)
	err = json.Unmarshal(data, out)
	if err != nil {
		out = nil
	}
	return
}
