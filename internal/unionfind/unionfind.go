// Package unionfind implements a generic path-compressing, union-by-rank
// disjoint-set forest. It is the spine the unifier builds its substitution
// on top of: each equivalence class of variables that have been unified
// together is one set.
//
// Grounded on the parent/rank bookkeeping of the original pif
// implementation's union_find.rs, reshaped into an idiomatic generic Go
// type.
package unionfind

// UnionFind is a disjoint-set forest over a comparable key type K.
// The zero value is not ready to use; call New.
type UnionFind[K comparable] struct {
	parent map[K]K
	rank   map[K]int
}

// New returns an empty UnionFind.
func New[K comparable]() *UnionFind[K] {
	return &UnionFind[K]{
		parent: make(map[K]K),
		rank:   make(map[K]int),
	}
}

// Insert adds x as a new singleton set if it is not already known. It is a
// no-op if x is already present.
func (uf *UnionFind[K]) Insert(x K) {
	if _, ok := uf.parent[x]; ok {
		return
	}
	uf.parent[x] = x
	uf.rank[x] = 0
}

// Find returns the representative of x's equivalence class, inserting x as
// a new singleton set first if it has not been seen before. Find
// compresses the path from x to its representative as it walks, so a
// sequence of Find calls is amortized near-constant time.
func (uf *UnionFind[K]) Find(x K) K {
	uf.Insert(x)

	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}

	for uf.parent[x] != root {
		next := uf.parent[x]
		uf.parent[x] = root
		x = next
	}
	return root
}

// Union merges the equivalence classes containing x and y, attaching the
// lower-rank tree under the higher-rank one (and breaking ties by
// incrementing the surviving root's rank). It is a no-op if x and y are
// already in the same class.
func (uf *UnionFind[K]) Union(x, y K) {
	xRoot, yRoot := uf.Find(x), uf.Find(y)
	if xRoot == yRoot {
		return
	}

	switch {
	case uf.rank[xRoot] < uf.rank[yRoot]:
		uf.parent[xRoot] = yRoot
	case uf.rank[xRoot] > uf.rank[yRoot]:
		uf.parent[yRoot] = xRoot
	default:
		uf.parent[yRoot] = xRoot
		uf.rank[xRoot]++
	}
}

// Connected reports whether x and y are in the same equivalence class.
func (uf *UnionFind[K]) Connected(x, y K) bool {
	return uf.Find(x) == uf.Find(y)
}

// Keys returns every element ever inserted into uf, in no particular order.
func (uf *UnionFind[K]) Keys() []K {
	keys := make([]K, 0, len(uf.parent))
	for k := range uf.parent {
		keys = append(keys, k)
	}
	return keys
}
