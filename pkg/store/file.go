package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
	"github.com/signalgrid/voltpath/pkg/observability"
)

// FileStore is a file-based network store for CLI usage.
// Each network is stored as one JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based network store.
// If baseDir is empty, defaults to ~/.config/voltpath/networks/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "voltpath", "networks")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create network dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) networkPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Save writes the document under the given name, replacing any previous
// version.
func (s *FileStore) Save(ctx context.Context, name string, doc netdef.Document) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	doc.Name = name
	rec := record{Name: name, UpdatedAt: time.Now().UTC(), Document: doc}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal network: %w", err)
	}

	err = os.WriteFile(s.networkPath(name), data, 0644)
	observability.Store().OnStoreWrite(ctx, "file", name, len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("write network file: %w", err)
	}
	return nil
}

// Load reads the document stored under the given name.
func (s *FileStore) Load(ctx context.Context, name string) (netdef.Document, error) {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return netdef.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := time.Now()
	data, err := os.ReadFile(s.networkPath(name))
	observability.Store().OnStoreRead(ctx, "file", name, time.Since(start), err)
	if err != nil {
		if os.IsNotExist(err) {
			return netdef.Document{}, vperrors.New(vperrors.ErrCodeNetworkNotFound, "network %q not found", name)
		}
		return netdef.Document{}, fmt.Errorf("read network file: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return netdef.Document{}, vperrors.Wrap(vperrors.ErrCodeInvalidFormat, err, "parse network %q", name)
	}
	return rec.Document, nil
}

// List returns info for every stored network, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read network dir: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var rec record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue // Skip corrupt entries rather than failing the listing
		}
		if rec.Name == "" {
			rec.Name = strings.TrimSuffix(entry.Name(), ".json")
		}
		infos = append(infos, rec.info())
	}

	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

// Delete removes the stored network. Deleting an unknown name is a no-op.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.networkPath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove network file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for network files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
