// Package cluster builds average-linkage hierarchical clusterings of the
// structure panel from a pairwise similarity matrix.
package cluster

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Merge records one agglomeration step. A and B are cluster indices:
// 0..n-1 name the original leaves, and step k (0-based) creates cluster
// n+k. Size is the member count of the merged cluster.
type Merge struct {
	A        int     `json:"a"`
	B        int     `json:"b"`
	Distance float64 `json:"distance"`
	Size     int     `json:"size"`
}

// DistanceMatrix converts a similarity matrix into a symmetric distance
// matrix with d = 1 - s. Off-diagonal asymmetries are averaged away and
// the diagonal is forced to zero.
func DistanceMatrix(sim [][]float64) (*mat.SymDense, error) {
	n := len(sim)
	if n == 0 {
		return nil, fmt.Errorf("empty similarity matrix")
	}
	for i, row := range sim {
		if len(row) != n {
			return nil, fmt.Errorf("similarity matrix not square: row %d has %d columns, want %d", i, len(row), n)
		}
	}
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := 1 - (sim[i][j]+sim[j][i])/2
			if v < 0 {
				v = 0
			}
			d.SetSym(i, j, v)
		}
	}
	return d, nil
}

// AverageLinkage agglomerates n leaves into a full dendrogram of n-1
// merges. Cluster-to-cluster distance follows the Lance-Williams update
// for the unweighted average (UPGMA) scheme.
func AverageLinkage(d *mat.SymDense) []Merge {
	n := d.SymmetricDim()
	if n < 2 {
		return nil
	}

	// Working distances between active clusters, keyed by cluster id.
	type cluster struct {
		id   int
		size int
	}
	active := make([]cluster, n)
	for i := range active {
		active[i] = cluster{id: i, size: 1}
	}
	dist := make(map[[2]int]float64, n*n/2)
	key := func(a, b int) [2]int {
		if a > b {
			a, b = b, a
		}
		return [2]int{a, b}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist[key(i, j)] = d.At(i, j)
		}
	}

	merges := make([]Merge, 0, n-1)
	nextID := n
	for len(active) > 1 {
		// Closest active pair.
		bi, bj := -1, -1
		best := math.Inf(1)
		for i := 0; i < len(active); i++ {
			for j := i + 1; j < len(active); j++ {
				if v := dist[key(active[i].id, active[j].id)]; v < best {
					best, bi, bj = v, i, j
				}
			}
		}
		a, b := active[bi], active[bj]
		merged := cluster{id: nextID, size: a.size + b.size}
		nextID++
		merges = append(merges, Merge{A: a.id, B: b.id, Distance: best, Size: merged.size})

		// Lance-Williams UPGMA update against every other active cluster.
		for i := 0; i < len(active); i++ {
			if i == bi || i == bj {
				continue
			}
			o := active[i]
			da := dist[key(a.id, o.id)]
			db := dist[key(b.id, o.id)]
			dist[key(merged.id, o.id)] = (float64(a.size)*da + float64(b.size)*db) / float64(merged.size)
		}

		// Drop the merged pair, keep order stable for determinism.
		keep := active[:0]
		for i, c := range active {
			if i != bi && i != bj {
				keep = append(keep, c)
			}
		}
		active = append(keep, merged)
	}
	return merges
}

// Cut flattens a dendrogram at a distance threshold: merges at or below
// the threshold are applied, everything above is left apart. Labels are
// renumbered 1..k in order of first appearance.
func Cut(merges []Merge, n int, threshold float64) []int {
	parent := make([]int, n+len(merges))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for k, m := range merges {
		if m.Distance > threshold {
			continue
		}
		id := n + k
		parent[find(m.A)] = id
		parent[find(m.B)] = id
	}

	labels := make([]int, n)
	next := 1
	seen := map[int]int{}
	for i := 0; i < n; i++ {
		root := find(i)
		if _, ok := seen[root]; !ok {
			seen[root] = next
			next++
		}
		labels[i] = seen[root]
	}
	return labels
}

// Groups inverts a label vector into named member lists, ordered by
// cluster label.
func Groups(labels []int, names []string) map[string][]string {
	out := map[string][]string{}
	for i, lab := range labels {
		k := fmt.Sprintf("cluster_%d", lab)
		out[k] = append(out[k], names[i])
	}
	for _, members := range out {
		sort.Strings(members)
	}
	return out
}

// NumClusters reports the distinct label count of a flat cut.
func NumClusters(labels []int) int {
	seen := map[int]struct{}{}
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
