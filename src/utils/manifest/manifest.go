package manifest

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/warp-contracts/loader/src/utils/status"
)

const (
	// Values fixed by the gateway path resolution protocol
	ManifestType    = "arweave/paths"
	ManifestVersion = "0.1.0"

	// Content-Type tag gateways dispatch on
	ContentType = "application/x.arweave-manifest+json"
)

// Manifest maps relative paths to the ids of the data items
// carrying them, in the layout gateways resolve
type Manifest struct {
	Manifest string                   `json:"manifest"`
	Version  string                   `json:"version"`
	Paths    map[string]status.PathId `json:"paths"`
}

// FromBundleStatuses merges the path mappings of the given bundles.
// Paths are keyed relative to baseDir, which must end with a slash
// so stripping it leaves a clean relative path.
func FromBundleStatuses(statuses []*status.BundleStatus, baseDir string) (self *Manifest, err error) {
	if baseDir != "" && !strings.HasSuffix(baseDir, "/") {
		err = ErrMissingTrailingSlash
		return
	}
	if len(statuses) == 0 {
		err = ErrNoBundleStatusesFound
		return
	}

	self = &Manifest{
		Manifest: ManifestType,
		Version:  ManifestVersion,
		Paths:    make(map[string]status.PathId),
	}

	for _, bundle := range statuses {
		for filePath, pathId := range bundle.FilePaths {
			relative := strings.TrimPrefix(filePath, baseDir)
			self.Paths[relative] = pathId
		}
	}
	return
}

func (self *Manifest) Serialize() ([]byte, error) {
	return json.Marshal(self)
}

// SortedPaths returns the relative paths in lexical order
func (self *Manifest) SortedPaths() (out []string) {
	out = make([]string, 0, len(self.Paths))
	for path := range self.Paths {
		out = append(out, path)
	}
	sort.Strings(out)
	return
}
