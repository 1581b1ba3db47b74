package schema

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/telhawk-systems/ocsf-mcp/internal/logging"
	"github.com/telhawk-systems/ocsf-mcp/internal/metrics"
	"golang.org/x/sync/singleflight"
)

//go:embed data/*.json
var embedded embed.FS

const documentExt = ".json"

var (
	// ErrNoStableVersion is returned when every stored version is a prerelease.
	ErrNoStableVersion = errors.New("no stable OCSF versions found")
	// ErrSchemaDecode wraps failures to parse a stored schema document.
	ErrSchemaDecode = errors.New("invalid schema document")
)

var prereleaseMarkers = []string{"dev", "alpha", "beta", "rc"}

// Repository loads schema documents named "<version>.json" from a file system
// and caches them per version.
type Repository struct {
	store  fs.FS
	logger *logging.Logger

	mu    sync.RWMutex
	cache map[string]*Schema
	group singleflight.Group
}

// NewRepository serves schema documents from store.
func NewRepository(store fs.FS, logger *logging.Logger) *Repository {
	return &Repository{
		store:  store,
		logger: logger,
		cache:  make(map[string]*Schema),
	}
}

// NewEmbeddedRepository serves the schema documents compiled into the binary.
func NewEmbeddedRepository(logger *logging.Logger) *Repository {
	store, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded schema data: %v", err))
	}
	return NewRepository(store, logger)
}

// NewDirRepository serves schema documents from a directory on disk.
func NewDirRepository(dir string, logger *logging.Logger) (*Repository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("schema directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("schema directory %s is not a directory", dir)
	}
	return NewRepository(os.DirFS(dir), logger), nil
}

// Load returns the schema for version. A version without a stored document
// yields the minimal built-in schema; only an unreadable or malformed
// document is an error.
func (r *Repository) Load(ctx context.Context, version string) (*Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	cached, ok := r.cache[version]
	r.mu.RUnlock()
	if ok {
		metrics.SchemaLoads.WithLabelValues("cache").Inc()
		return cached, nil
	}

	v, err, _ := r.group.Do(version, func() (interface{}, error) {
		return r.loadDocument(version)
	})
	if err != nil {
		return nil, err
	}

	s := v.(*Schema)
	if s == nil {
		metrics.SchemaLoads.WithLabelValues("fallback").Inc()
		r.logger.WarnContext(ctx, "schema version not found; falling back to minimal schema",
			logging.Version(version))
		return Minimal(), nil
	}
	return s, nil
}

// loadDocument reads and caches one document. A nil schema with a nil error
// means no document exists for version.
func (r *Repository) loadDocument(version string) (*Schema, error) {
	r.mu.RLock()
	cached, ok := r.cache[version]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	name := version + documentExt
	if version == "" || strings.ContainsAny(version, `/\`) || !fs.ValidPath(name) {
		return (*Schema)(nil), nil
	}

	data, err := fs.ReadFile(r.store, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return (*Schema)(nil), nil
		}
		return nil, fmt.Errorf("read schema %s: %w", version, err)
	}

	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", version, err)
	}

	r.mu.Lock()
	r.cache[version] = s
	r.mu.Unlock()

	metrics.SchemaLoads.WithLabelValues("store").Inc()
	r.logger.Debug("loaded schema document",
		logging.Version(version),
		slog.Int("classes", len(s.Classes)))
	return s, nil
}

// Decode parses a schema document. Missing maps decode as empty maps.
func Decode(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaDecode, err)
	}
	if s.Version == "" {
		return nil, fmt.Errorf("%w: missing version", ErrSchemaDecode)
	}
	for name, c := range s.Classes {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: class %q missing name", ErrSchemaDecode, name)
		}
		if c.Attributes == nil {
			c.Attributes = map[string]Attribute{}
			s.Classes[name] = c
		}
	}
	if s.Classes == nil {
		s.Classes = map[string]EventClass{}
	}
	if s.Objects == nil {
		s.Objects = map[string]Object{}
	}
	if s.Types == nil {
		s.Types = map[string]TypeDef{}
	}
	if s.DictionaryAttributes == nil {
		s.DictionaryAttributes = map[string]Attribute{}
	}
	return &s, nil
}

// ListVersions returns the identifiers of every stored document in plain
// lexicographic order.
func (r *Repository) ListVersions() ([]string, error) {
	entries, err := fs.ReadDir(r.store, ".")
	if err != nil {
		return nil, fmt.Errorf("list schema versions: %w", err)
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), documentExt) {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), documentExt))
	}
	slices.Sort(versions)
	return slices.Compact(versions), nil
}

// NewestStableVersion returns the lexicographically last version that is not
// a dev, alpha, beta or rc build.
func (r *Repository) NewestStableVersion() (string, error) {
	versions, err := r.ListVersions()
	if err != nil {
		return "", err
	}
	for i := len(versions) - 1; i >= 0; i-- {
		if IsStable(versions[i]) {
			return versions[i], nil
		}
	}
	return "", ErrNoStableVersion
}

// IsStable reports whether version carries no prerelease marker.
func IsStable(version string) bool {
	lower := strings.ToLower(version)
	for _, marker := range prereleaseMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return true
}
