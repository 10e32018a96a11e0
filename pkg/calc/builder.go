package calc

import (
	"github.com/signalgrid/voltpath/pkg/errors"
	"github.com/signalgrid/voltpath/pkg/model"
)

// buildPaths enumerates, for every supply block, every maximal simple path
// starting at that supply. Traversal is depth-first with a per-path visited
// set (the path prefix itself), not graph-wide marking: the same structural
// block may legitimately appear in several independent branches, while
// cycles through terminal/busbar/row structures are cut by the
// already-in-path exclusion.
//
// Equipment presence is validated at every visited block before traversal
// continues, so a modeling error surfaces before any numeric pass runs.
func buildPaths(net *model.Network) ([]Path, error) {
	supplies := net.Supplies()
	if len(supplies) == 0 {
		return nil, errors.New(errors.ErrCodeMissingSupply, "network has no supply blocks")
	}

	var paths []Path
	for _, supply := range supplies {
		if err := checkEquipment(supply); err != nil {
			return nil, err
		}
		sub, err := extend(net, Path{Points: []Point{newPoint(supply)}})
		if err != nil {
			return nil, err
		}
		paths = append(paths, sub...)
	}
	return paths, nil
}

// extend recurses from the last block of path. Every unvisited neighbor
// opens a new branch on a cloned path; a block with no unvisited neighbor
// completes the path.
func extend(net *model.Network, path Path) ([]Path, error) {
	current := path.Points[len(path.Points)-1].BlockID

	var next []*model.Block
	for _, id := range net.Neighbors(current) {
		if path.ContainsBlock(id) {
			continue
		}
		block, err := net.Block(id)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "connection references missing block")
		}
		if err := checkEquipment(block); err != nil {
			return nil, err
		}
		next = append(next, block)
	}

	if len(next) == 0 {
		return []Path{path}, nil
	}

	var paths []Path
	for _, block := range next {
		branch := path.clone()
		branch.Points = append(branch.Points, newPoint(block))
		sub, err := extend(net, branch)
		if err != nil {
			return nil, err
		}
		paths = append(paths, sub...)
	}
	return paths, nil
}

// checkEquipment verifies that a block requiring catalog equipment has it.
// A conductor without a positive length counts as missing equipment even
// when a cable is assigned.
func checkEquipment(b *model.Block) error {
	if !b.RequiresEquipment() || b.HasEquipment() {
		return nil
	}
	if b.Kind == model.KindConductor && b.Conductor != nil {
		return errors.New(errors.ErrCodeMissingEquipment,
			"%s %q (id %d) has non-positive length %g m", b.Kind, b.Name, b.ID, b.Length)
	}
	return errors.New(errors.ErrCodeMissingEquipment,
		"%s %q (id %d) has no equipment assigned", b.Kind, b.Name, b.ID)
}
