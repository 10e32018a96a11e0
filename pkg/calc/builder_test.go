package calc

import (
	"slices"
	"strings"
	"testing"

	vperrors "github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

func pathIDs(paths []Path) [][]int {
	out := make([][]int, len(paths))
	for i, p := range paths {
		out[i] = p.BlockIDs()
	}
	return out
}

func TestBuildPathsBranching(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))
	cons := mustItem(cat.Consumer("signal-10"))

	// Supply feeding two branches through a common terminal.
	net := buildNet(t, []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindSupply, Voltage: 120},
		{ID: 2, ParentID: 1, Kind: model.KindTerminal},
		{ID: 3, ParentID: 2, Kind: model.KindConductor, Length: 10, Conductor: cable},
		{ID: 4, ParentID: 2, Kind: model.KindLoad, Consumer: cons},
		{ID: 5, ParentID: 2, Kind: model.KindConductor, Length: 20, Conductor: cable},
		{ID: 6, ParentID: 2, Kind: model.KindLoad, Consumer: cons},
	}, [][2]int{{1, 2}, {2, 3}, {3, 4}, {2, 5}, {5, 6}})

	paths, err := buildPaths(net)
	if err != nil {
		t.Fatalf("buildPaths: %v", err)
	}

	got := pathIDs(paths)
	want := [][]int{{1, 2, 3, 4}, {1, 2, 5, 6}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestBuildPathsCutsCycles(t *testing.T) {
	// Ring of terminals: traversal must not revisit a block already on the
	// path, so each direction around the ring yields one maximal path.
	net := buildNet(t, []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindSupply, Voltage: 120},
		{ID: 2, ParentID: 1, Kind: model.KindTerminal},
		{ID: 3, ParentID: 1, Kind: model.KindTerminal},
		{ID: 4, ParentID: 1, Kind: model.KindTerminal},
	}, [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 2}})

	paths, err := buildPaths(net)
	if err != nil {
		t.Fatalf("buildPaths: %v", err)
	}

	got := pathIDs(paths)
	want := [][]int{{1, 2, 3, 4}, {1, 2, 4, 3}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestBuildPathsMissingSupply(t *testing.T) {
	net := buildNet(t, []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindTerminal},
	}, nil)

	_, err := buildPaths(net)
	if !vperrors.Is(err, vperrors.ErrCodeMissingSupply) {
		t.Errorf("error = %v, want MISSING_SUPPLY", err)
	}
}

func TestBuildPathsEquipmentChecks(t *testing.T) {
	cat := testCatalog(t)
	cable := mustItem(cat.Conductor("2x16"))

	tests := []struct {
		name     string
		block    model.Block
		fragment string
	}{
		{
			name:     "load without consumer",
			block:    model.Block{ID: 2, ParentID: 1, Kind: model.KindLoad},
			fragment: "no equipment assigned",
		},
		{
			name:     "conductor without cable",
			block:    model.Block{ID: 2, ParentID: 1, Kind: model.KindConductor, Length: 50},
			fragment: "no equipment assigned",
		},
		{
			name:     "conductor with zero length",
			block:    model.Block{ID: 2, ParentID: 1, Kind: model.KindConductor, Conductor: cable},
			fragment: "non-positive length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := buildNet(t, []model.Block{
				{ID: 1, ParentID: -1, Kind: model.KindSupply, Voltage: 120},
				tt.block,
			}, [][2]int{{1, 2}})

			_, err := buildPaths(net)
			if !vperrors.Is(err, vperrors.ErrCodeMissingEquipment) {
				t.Fatalf("error = %v, want MISSING_EQUIPMENT", err)
			}
			if !strings.Contains(err.Error(), tt.fragment) {
				t.Errorf("error %q does not mention %q", err, tt.fragment)
			}
		})
	}
}

func TestBuildPathsMultipleSupplies(t *testing.T) {
	cat := testCatalog(t)
	cons := mustItem(cat.Consumer("signal-10"))

	net := buildNet(t, []model.Block{
		{ID: 1, ParentID: -1, Kind: model.KindSupply, Voltage: 120},
		{ID: 2, ParentID: 1, Kind: model.KindLoad, Consumer: cons},
		{ID: 3, ParentID: -1, Kind: model.KindSupply, Voltage: 48},
		{ID: 4, ParentID: 3, Kind: model.KindLoad, Consumer: cons},
	}, [][2]int{{1, 2}, {3, 4}})

	paths, err := buildPaths(net)
	if err != nil {
		t.Fatalf("buildPaths: %v", err)
	}

	got := pathIDs(paths)
	want := [][]int{{1, 2}, {3, 4}}
	if !slices.EqualFunc(got, want, slices.Equal) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}
