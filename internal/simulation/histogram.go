package simulation

// Histogram buckets the ALE series into equal-width bins.
type Histogram struct {
	Edges  []float64 `json:"edges"` // len(Counts)+1 bin boundaries
	Counts []int     `json:"counts"`
}

// NewHistogram bins an ascending series. A series without spread yields a single bin.
func NewHistogram(sorted []float64, bins int) *Histogram {
	n := len(sorted)
	if n == 0 || bins <= 0 {
		return &Histogram{}
	}

	lo, hi := sorted[0], sorted[n-1]
	if lo == hi {
		return &Histogram{Edges: []float64{lo, hi}, Counts: []int{n}}
	}

	width := (hi - lo) / float64(bins)
	edges := make([]float64, bins+1)
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	edges[bins] = hi

	counts := make([]int, bins)
	for _, v := range sorted {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	return &Histogram{Edges: edges, Counts: counts}
}

// Total returns the number of values binned.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}
