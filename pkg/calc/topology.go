package calc

import (
	"slices"

	"github.com/signalgrid/voltpath/pkg/errors"
)

// validateTopology runs the two structural checks the numeric passes depend
// on: no branch reconnection within a supply's path tree, and no block
// sharing between the path trees of distinct supplies.
func validateTopology(paths []Path) error {
	if err := checkReconnection(paths); err != nil {
		return err
	}
	return checkSourceIsolation(paths)
}

// checkReconnection rejects path pairs that diverge and later meet again.
// For every pair of paths from the same supply, the divergence point is the
// last index at which their block-ID sequences still agree; if both paths
// continue past it and any block ID appears in both tails, the branches
// reconnect downstream, which the radial model forbids.
func checkReconnection(paths []Path) error {
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			a, b := paths[i], paths[j]
			if a.Supply().BlockID != b.Supply().BlockID {
				continue
			}

			div := divergenceIndex(a, b)
			if div >= a.Len()-1 || div >= b.Len()-1 {
				// One path is a prefix of the other - no divergence.
				continue
			}

			shared := sharedTailIDs(a, b, div)
			if len(shared) > 0 {
				return errors.New(errors.ErrCodeTopologyViolation,
					"paths from supply %d reconnect after diverging: [%s] and [%s] share blocks %v",
					a.Supply().BlockID, a, b, shared)
			}
		}
	}
	return nil
}

// divergenceIndex returns the last index at which both paths carry the same
// block ID, or -1 when they differ from the start.
func divergenceIndex(a, b Path) int {
	div := -1
	for i := 0; i < a.Len() && i < b.Len(); i++ {
		if a.Points[i].BlockID != b.Points[i].BlockID {
			break
		}
		div = i
	}
	return div
}

// sharedTailIDs returns the block IDs occurring in both tails after the
// divergence index, in the first path's order.
func sharedTailIDs(a, b Path, div int) []int {
	inB := make(map[int]bool)
	for _, pt := range b.Points[div+1:] {
		inB[pt.BlockID] = true
	}
	var shared []int
	for _, pt := range a.Points[div+1:] {
		if inB[pt.BlockID] {
			shared = append(shared, pt.BlockID)
		}
	}
	return shared
}

// checkSourceIsolation rejects networks where the path trees of two
// supplies touch. Excluding the supply blocks themselves, the block-ID sets
// used by each supply's paths must be disjoint; a shared block would let
// two sources silently feed the same equipment.
func checkSourceIsolation(paths []Path) error {
	used := make(map[int]map[int]bool) // supplyID -> block IDs in its tree
	for _, p := range paths {
		supplyID := p.Supply().BlockID
		if used[supplyID] == nil {
			used[supplyID] = make(map[int]bool)
		}
		for _, pt := range p.Points[1:] {
			used[supplyID][pt.BlockID] = true
		}
	}

	supplies := make([]int, 0, len(used))
	for id := range used {
		supplies = append(supplies, id)
	}
	slices.Sort(supplies)

	for i := 0; i < len(supplies); i++ {
		for j := i + 1; j < len(supplies); j++ {
			var shared []int
			for id := range used[supplies[i]] {
				if used[supplies[j]][id] {
					shared = append(shared, id)
				}
			}
			if len(shared) > 0 {
				slices.Sort(shared)
				return errors.New(errors.ErrCodeTopologyViolation,
					"supplies %d and %d share blocks %v: each block may be fed by exactly one source",
					supplies[i], supplies[j], shared)
			}
		}
	}
	return nil
}
