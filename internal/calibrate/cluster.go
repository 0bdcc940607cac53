package calibrate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// clusterByX groups holes into k digit clusters by 1-D k-means over the
// hole centroid X coordinates. Centers are seeded from the sorted X
// values at evenly spaced ranks, then refined for at most rounds
// iterations of assign/recompute, stopping early once assignments
// settle. The returned groups are ordered by final center X ascending,
// i.e. digit positions left to right. Groups may be empty or oversized
// when the holes are not actually paired; the caller decides what to do
// with those.
func clusterByX(holes []Hole, k, rounds int) [][]Hole {
	n := len(holes)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return holes[order[i]].Centroid.X < holes[order[j]].Centroid.X
	})

	centers := make([]float64, k)
	for i := 0; i < k; i++ {
		centers[i] = holes[order[i*n/k]].Centroid.X
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}

	for round := 0; round < rounds; round++ {
		changed := false
		for i, h := range holes {
			best := 0
			bestDist := math.Abs(h.Centroid.X - centers[0])
			for c := 1; c < k; c++ {
				// Strict < keeps the lowest-index center on ties.
				if d := math.Abs(h.Centroid.X - centers[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		for c := 0; c < k; c++ {
			var xs []float64
			for i, a := range assign {
				if a == c {
					xs = append(xs, holes[i].Centroid.X)
				}
			}
			if len(xs) > 0 {
				centers[c] = stat.Mean(xs, nil)
			}
		}

		if !changed {
			break
		}
	}

	clusterOrder := make([]int, k)
	for i := range clusterOrder {
		clusterOrder[i] = i
	}
	sort.Slice(clusterOrder, func(i, j int) bool {
		return centers[clusterOrder[i]] < centers[clusterOrder[j]]
	})

	groups := make([][]Hole, k)
	for pos, c := range clusterOrder {
		for i, a := range assign {
			if a == c {
				groups[pos] = append(groups[pos], holes[i])
			}
		}
	}
	return groups
}
