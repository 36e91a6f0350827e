package digraph

// unionFind is a classic disjoint-set forest with path compression and
// union-by-rank, grown by one slot at a time via alloc. It backs the
// arena's unique-id -> canonical-id mapping (spec §3, §9: "use an
// off-the-shelf union-find with path compression and union-by-rank").
//
// Complexity: alloc is O(1) amortized; find and union are O(alpha(n))
// amortized, effectively constant for any n that fits in memory.
type unionFind struct {
	parent []int
	rank   []int
}

// alloc creates a new singleton class and returns its id.
func (u *unionFind) alloc() int {
	id := len(u.parent)
	u.parent = append(u.parent, id)
	u.rank = append(u.rank, 0)

	return id
}

// find returns the canonical representative of x's class, compressing
// the path from x to the root as it goes.
func (u *unionFind) find(x int) int {
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	// Path compression: point every visited node directly at root.
	for u.parent[x] != root {
		u.parent[x], x = root, u.parent[x]
	}

	return root
}

// union merges the classes of x and y, returning the new shared root.
// If x and y are already in the same class, it is a no-op that returns
// that class's root.
func (u *unionFind) union(x, y int) int {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return rx
	}
	switch {
	case u.rank[rx] < u.rank[ry]:
		u.parent[rx] = ry
		return ry
	case u.rank[rx] > u.rank[ry]:
		u.parent[ry] = rx
		return rx
	default:
		u.parent[ry] = rx
		u.rank[rx]++
		return rx
	}
}
