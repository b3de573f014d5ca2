// Package snapshots persists response shape fingerprints per endpoint and
// parameter set, and checks fresh responses against them for drift.
package snapshots

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/agentstation/utc"
	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"

	"github.com/agentstation/metricdocs/pkg/constants"
	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/shape"
)

// Snapshot is one persisted fingerprint.
type Snapshot struct {
	Endpoint  string             `json:"endpoint"`
	Params    map[string]string  `json:"params"`
	Shape     *shape.Fingerprint `json:"shape"`
	Timestamp utc.Time           `json:"timestamp"`
}

// Store is a directory of snapshot files, one per canonical key.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// CanonicalKey joins endpoint and params with params sorted by name, so
// parameter order never changes the key.
func CanonicalKey(endpoint string, params map[string]string) string {
	if len(params) == 0 {
		return endpoint
	}
	names := make([]string, 0, len(params))
	for k := range params {
		names = append(names, k)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, k := range names {
		pairs[i] = k + "=" + params[k]
	}
	return endpoint + "?" + strings.Join(pairs, "&")
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Filename returns the deterministic file name for endpoint and params.
func Filename(endpoint string, params map[string]string) string {
	key := CanonicalKey(endpoint, params)
	slug := strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(endpoint), "-"), "-")
	if slug == "" {
		slug = "root"
	}
	return fmt.Sprintf("%s-%016x.json", slug, xxhash.Sum64String(key))
}

// Path returns the full path of the snapshot file for endpoint and params.
func (s *Store) Path(endpoint string, params map[string]string) string {
	return filepath.Join(s.dir, Filename(endpoint, params))
}

// Load returns the stored snapshot, or a NotFoundError when none exists.
func (s *Store) Load(endpoint string, params map[string]string) (*Snapshot, error) {
	path := s.Path(endpoint, params)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFoundError("snapshot", CanonicalKey(endpoint, params))
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &snap, nil
}

// Save overwrites the snapshot for endpoint and params.
func (s *Store) Save(endpoint string, fp *shape.Fingerprint, params map[string]string) (*Snapshot, error) {
	if params == nil {
		params = map[string]string{}
	}
	snap := &Snapshot{
		Endpoint:  endpoint,
		Params:    params,
		Shape:     fp,
		Timestamp: utc.Now(),
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.WrapParse("json", endpoint, err)
	}
	if err := os.MkdirAll(s.dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", s.dir, err)
	}
	path := s.Path(endpoint, params)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return nil, errors.WrapIO("write", path, err)
	}
	return snap, nil
}
