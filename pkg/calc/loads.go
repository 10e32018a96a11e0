package calc

import "github.com/signalgrid/voltpath/pkg/model"

// aggregateLoads computes, for every point, the total demand of all load
// blocks at or downstream of it - across physically divergent paths that
// share a common upstream block. A shared conductor or busbar must carry
// the combined demand of every branch it feeds, even though filtering split
// those branches into separate paths.
//
// Rather than scanning path pairs for shared IDs, the stage builds one
// aggregate map (block ID → downstream VA, each block/load pair counted
// once) and broadcasts it to every point. Every occurrence of a block ID
// therefore reads the same LoadAtPoint, which is the cross-path invariant
// the electrical solver depends on.
//
// AddedLoad - the demand introduced at a specific point rather than the
// cumulative downstream demand - is then derived per path, last to first.
func aggregateLoads(paths []Path) {
	agg := make(map[int]float64)
	counted := make(map[[2]int]bool) // (upstream block, load block) pairs

	for pi := range paths {
		points := paths[pi].Points
		for i := len(points) - 1; i >= 0; i-- {
			if points[i].Kind != model.KindLoad {
				continue
			}
			demand := points[i].block.Consumer.Load
			loadID := points[i].BlockID
			for j := i; j >= 0; j-- {
				key := [2]int{points[j].BlockID, loadID}
				if counted[key] {
					continue
				}
				counted[key] = true
				agg[points[j].BlockID] += demand
			}
		}
	}

	for pi := range paths {
		points := paths[pi].Points
		for i := range points {
			points[i].LoadAtPoint = agg[points[i].BlockID]
		}

		last := len(points) - 1
		points[last].AddedLoad = points[last].LoadAtPoint
		for i := last - 1; i >= 0; i-- {
			points[i].AddedLoad = points[i].LoadAtPoint - points[i+1].LoadAtPoint
		}
	}
}
