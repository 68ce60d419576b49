package status

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/xid"
	"lukechampine.com/blake3"
)

const manifestPrefix = "manifest_"

// Store keeps one JSON file per upload in a flat directory.
// File statuses are keyed by a hash of the local path, so the
// same path always lands in the same file. Bundle statuses are
// keyed by transaction id.
type Store struct {
	dir string
}

func NewStore(dir string) (self *Store, err error) {
	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return
	}
	self = &Store{dir: dir}
	return
}

func (self *Store) Dir() string {
	return self.dir
}

// PathKey derives the status file name for a local file path
func PathKey(filePath string) string {
	sum := blake3.Sum256([]byte(filePath))
	return hex.EncodeToString(sum[:])
}

func (self *Store) SaveFileStatus(status *Status) (err error) {
	if status.FilePath == "" {
		return ErrMissingFilePath
	}
	return self.SaveJson(PathKey(status.FilePath)+".json", status)
}

func (self *Store) SaveBundleStatus(status *BundleStatus) (err error) {
	if len(status.Id) == 0 {
		return ErrMissingId
	}
	return self.SaveJson(status.Id.Base64()+".json", status)
}

// SaveJson writes through a temp file in the same directory, so a
// crash mid write never leaves a truncated status behind
func (self *Store) SaveJson(filename string, v interface{}) (err error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}

	tmp := filepath.Join(self.dir, ".tmp-"+xid.New().String())
	err = os.WriteFile(tmp, data, 0o644)
	if err != nil {
		return
	}

	err = os.Rename(tmp, filepath.Join(self.dir, filename))
	if err != nil {
		os.Remove(tmp)
	}
	return
}

func (self *Store) LoadFileStatus(filePath string) (out *Status, err error) {
	data, err := os.ReadFile(filepath.Join(self.dir, PathKey(filePath)+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrStatusNotFound
		}
		return
	}

	out = new(Status)
	err = json.Unmarshal(data, out)
	if err != nil {
		out = nil
	}
	return
}

// LoadForPaths returns the statuses saved for the given paths,
// silently skipping paths that were never uploaded
func (self *Store) LoadForPaths(paths []string) (out []*Status, err error) {
	out = make([]*Status, 0, len(paths))
	for _, path := range paths {
		status, loadErr := self.LoadFileStatus(path)
		if loadErr != nil {
			if loadErr == ErrStatusNotFound {
				continue
			}
			err = loadErr
			return
		}
		out = append(out, status)
	}
	return
}

// LoadAll reads every file status in the directory, skipping bundle
// statuses and manifest records
func (self *Store) LoadAll() (out []*Status, err error) {
	entries, err := os.ReadDir(self.dir)
	if err != nil {
		return
	}

	out = make([]*Status, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			!strings.HasSuffix(name, ".json") ||
			strings.HasPrefix(name, manifestPrefix) {
			continue
		}

		data, readErr := os.ReadFile(filepath.Join(self.dir, name))
		if readErr != nil {
			err = readErr
			return
		}

		status := new(Status)
		err = json.Unmarshal(data, status)
		if err != nil {
			return
		}

		// Bundle statuses are keyed by tx id, file statuses carry their path
		if status.FilePath == "" {
			continue
		}
		out = append(out, status)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].FilePath < out[j].FilePath })
	return
}

// ListBundleStatuses reads every bundle status in the directory
func (self *Store) ListBundleStatuses() (out []*BundleStatus, err error) {
	entries, err := os.ReadDir(self.dir)
	if err != nil {
		return
	}

	out = make([]*BundleStatus, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			!strings.HasSuffix(name, ".json") ||
			strings.HasPrefix(name, manifestPrefix) {
			continue
		}

		data, readErr := os.ReadFile(filepath.Join(self.dir, name))
		if readErr != nil {
			err = readErr
			return
		}

		status := new(BundleStatus)
		err = json.Unmarshal(data, status)
		if err != nil {
			return
		}

		if status.NumberOfFiles == 0 || len(status.FilePaths) == 0 {
			continue
		}
		out = append(out, status)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return
}
