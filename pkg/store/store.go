// Package store persists named network documents so a distribution design
// can be saved, listed and reloaded across runs.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for shared deployments
//
// Names are validated before touching any backend, so a hostile name never
// reaches the filesystem or a query.
package store

import (
	"context"
	"time"

	"github.com/signalgrid/voltpath/pkg/netdef"
)

// Info describes a stored network without its full document.
type Info struct {
	Name      string    `json:"name" bson:"name"`
	Blocks    int       `json:"blocks" bson:"blocks"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Store persists network documents by name.
//
// Save overwrites any existing document under the same name. Load returns a
// NETWORK_NOT_FOUND error for unknown names; Delete of an unknown name is
// not an error. List returns entries sorted by name.
type Store interface {
	Save(ctx context.Context, name string, doc netdef.Document) error
	Load(ctx context.Context, name string) (netdef.Document, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
	Close() error
}

// record is the persisted envelope shared by the file and mongo backends.
type record struct {
	Name      string          `json:"name" bson:"name"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
	Document  netdef.Document `json:"document" bson:"document"`
}

func (r record) info() Info {
	return Info{Name: r.Name, Blocks: len(r.Document.Blocks), UpdatedAt: r.UpdatedAt}
}
