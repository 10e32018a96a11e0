package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
)

// MemoryStore is an in-memory network store for development and testing.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

func (s *MemoryStore) Save(ctx context.Context, name string, doc netdef.Document) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Name = name
	s.records[name] = record{Name: name, UpdatedAt: time.Now().UTC(), Document: doc}
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, name string) (netdef.Document, error) {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return netdef.Document{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	if !ok {
		return netdef.Document{}, vperrors.New(vperrors.ErrCodeNetworkNotFound, "network %q not found", name)
	}
	return rec.Document, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]Info, 0, len(s.records))
	for _, rec := range s.records {
		infos = append(infos, rec.info())
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	if err := vperrors.ValidateNetworkName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
