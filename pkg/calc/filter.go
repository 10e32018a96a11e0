package calc

import "github.com/signalgrid/voltpath/pkg/model"

// filterPaths collapses terminal blocks that are not genuine branch points
// and trims each path to end at its last load. Paths that never reach a
// load are dropped entirely - an unused branch is legitimate topology, not
// an error.
//
// The branch-point test runs against the unfiltered path set: a terminal at
// index i of path p is a branch point when some other path shares p's
// block-ID prefix up to and including i but continues to a different block
// immediately after it.
func filterPaths(paths []Path) []Path {
	var out []Path
	for pi := range paths {
		filtered := filterTerminals(paths, pi)
		trimmed, ok := trimToLastLoad(filtered)
		if !ok {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// filterTerminals returns a copy of paths[pi] with non-essential terminals
// removed. Terminals at either end of the path always stay; so do all
// non-terminal blocks.
func filterTerminals(paths []Path, pi int) Path {
	p := paths[pi]
	points := make([]Point, 0, p.Len())
	for i := range p.Points {
		if p.Points[i].Kind != model.KindTerminal {
			points = append(points, p.Points[i])
			continue
		}
		if i == 0 || i == p.Len()-1 || isBranchPoint(paths, pi, i) {
			points = append(points, p.Points[i])
		}
	}
	return Path{Points: points}
}

// isBranchPoint reports whether the block at paths[pi].Points[i] splits the
// path tree: another path carries the same prefix through index i and then
// continues to a different next block.
func isBranchPoint(paths []Path, pi, i int) bool {
	p := paths[pi]
	for qi := range paths {
		if qi == pi || paths[qi].Len() <= i+1 {
			continue
		}
		if p.Len() <= i+1 {
			continue
		}
		if samePrefix(p, paths[qi], i) && paths[qi].Points[i+1].BlockID != p.Points[i+1].BlockID {
			return true
		}
	}
	return false
}

// samePrefix reports whether both paths carry identical block IDs at every
// index up to and including last.
func samePrefix(a, b Path, last int) bool {
	if a.Len() <= last || b.Len() <= last {
		return false
	}
	for i := 0; i <= last; i++ {
		if a.Points[i].BlockID != b.Points[i].BlockID {
			return false
		}
	}
	return true
}

// trimToLastLoad cuts the path after its last load occurrence. The second
// return is false when the path contains no load at all.
func trimToLastLoad(p Path) (Path, bool) {
	for i := p.Len() - 1; i >= 0; i-- {
		if p.Points[i].Kind == model.KindLoad {
			return Path{Points: p.Points[:i+1]}, true
		}
	}
	return Path{}, false
}
