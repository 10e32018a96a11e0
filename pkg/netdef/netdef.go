// Package netdef serializes distribution networks to and from their JSON
// document form. The document format references catalog equipment by name,
// so decoding needs the catalog the network was authored against.
//
// Fingerprints over the canonical document form feed the result cache: two
// inputs that fingerprint the same are guaranteed to calculate the same.
package netdef

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/signalgrid/voltpath/pkg/catalog"
	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// =============================================================================
// Network Serialization API
// =============================================================================

// Marshal converts a network to JSON bytes.
// Blocks are sorted by ID for deterministic output.
func Marshal(n *model.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes a network to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(n *model.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(n, f)
}

// Write writes a network as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(n *model.Network, w io.Writer) error {
	return writeTo(n, w)
}

// ReadFile reads a JSON file and returns the decoded network, resolving
// equipment references against the given catalog.
func ReadFile(path string, cat *catalog.Catalog) (*model.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, vperrors.Wrap(vperrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return readFrom(f, cat)
}

// Read decodes a JSON network from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader, cat *catalog.Catalog) (*model.Network, error) {
	return readFrom(r, cat)
}

// =============================================================================
// Fingerprints
// =============================================================================

// Fingerprint returns a short hex digest over the canonical document form of
// a network. Networks with the same blocks, connections, and equipment
// references always fingerprint the same regardless of construction order.
func Fingerprint(n *model.Network) (string, error) {
	data, err := json.Marshal(FromNetwork(n))
	if err != nil {
		return "", fmt.Errorf("fingerprint network: %w", err)
	}
	return digest(data), nil
}

// CatalogFingerprint returns a short hex digest over a catalog's equipment
// tables. The catalog accessors return sorted views, so the digest is
// independent of load order.
func CatalogFingerprint(cat *catalog.Catalog) (string, error) {
	snapshot := struct {
		Conductors   []*catalog.Conductor      `json:"conductors"`
		Transformers []*catalog.TransformerUPS `json:"transformers"`
		Consumers    []*catalog.Consumer       `json:"consumers"`
	}{cat.Conductors(), cat.Transformers(), cat.Consumers()}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("fingerprint catalog: %w", err)
	}
	return digest(data), nil
}

// digest hashes canonical bytes to a 16-char hex string. Collisions at this
// length are acceptable for cache keys, which tolerate rare misses.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(n *model.Network, w io.Writer) error {
	out := FromNetwork(n)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader, cat *catalog.Catalog) (*model.Network, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, vperrors.Wrap(vperrors.ErrCodeInvalidFormat, err, "decode network")
	}
	return ToNetwork(doc, cat)
}
