package store

import (
	"context"
	"reflect"
	"testing"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/netdef"
)

func testDoc(blocks int) netdef.Document {
	doc := netdef.Document{}
	for i := 1; i <= blocks; i++ {
		kind := "terminal"
		if i == 1 {
			kind = "supply"
		}
		doc.Blocks = append(doc.Blocks, netdef.BlockDoc{ID: i, Kind: kind})
	}
	for i := 1; i < blocks; i++ {
		doc.Connections = append(doc.Connections, netdef.Connection{From: i, To: i + 1})
	}
	return doc
}

// storeUnderTest runs the shared contract tests against a backend.
func storeUnderTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// Empty store
	if _, err := s.Load(ctx, "absent"); !vperrors.Is(err, vperrors.ErrCodeNetworkNotFound) {
		t.Errorf("Load(absent) error = %v, want NETWORK_NOT_FOUND", err)
	}

	// Save and load round trip
	doc := testDoc(3)
	if err := s.Save(ctx, "site-a", doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx, "site-a")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "site-a" {
		t.Errorf("loaded name = %q, want %q", got.Name, "site-a")
	}
	if !reflect.DeepEqual(got.Blocks, doc.Blocks) || !reflect.DeepEqual(got.Connections, doc.Connections) {
		t.Errorf("loaded document differs:\n got %+v\nwant %+v", got, doc)
	}

	// Overwrite
	if err := s.Save(ctx, "site-a", testDoc(5)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Load(ctx, "site-a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Blocks) != 5 {
		t.Errorf("after overwrite got %d blocks, want 5", len(got.Blocks))
	}

	// List sorted by name
	if err := s.Save(ctx, "site-b", testDoc(2)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, "alpha", testDoc(1)); err != nil {
		t.Fatal(err)
	}
	infos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	wantNames := []string{"alpha", "site-a", "site-b"}
	if len(infos) != len(wantNames) {
		t.Fatalf("List returned %d entries, want %d", len(infos), len(wantNames))
	}
	for i, info := range infos {
		if info.Name != wantNames[i] {
			t.Errorf("List[%d].Name = %q, want %q", i, info.Name, wantNames[i])
		}
		if info.UpdatedAt.IsZero() {
			t.Errorf("List[%d].UpdatedAt is zero", i)
		}
	}
	if infos[1].Blocks != 5 {
		t.Errorf("site-a block count = %d, want 5", infos[1].Blocks)
	}

	// Delete, including an unknown name
	if err := s.Delete(ctx, "site-a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(unknown) = %v, want nil", err)
	}
	if _, err := s.Load(ctx, "site-a"); !vperrors.Is(err, vperrors.ErrCodeNetworkNotFound) {
		t.Errorf("Load after delete error = %v, want NETWORK_NOT_FOUND", err)
	}

	// Hostile names never reach the backend
	for _, name := range []string{"", "../escape", "a/b", "a\\b"} {
		if err := s.Save(ctx, name, testDoc(1)); !vperrors.Is(err, vperrors.ErrCodeInvalidName) {
			t.Errorf("Save(%q) error = %v, want INVALID_NAME", name, err)
		}
	}
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	storeUnderTest(t, s)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeUnderTest(t, s)
}

func TestFileStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Save(ctx, "kept", testDoc(2)); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	doc, err := second.Load(ctx, "kept")
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(doc.Blocks) != 2 {
		t.Errorf("got %d blocks, want 2", len(doc.Blocks))
	}
}
