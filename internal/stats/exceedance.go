package stats

import "sort"

// ExceedancePoint is one point of a loss exceedance curve.
type ExceedancePoint struct {
	Loss        float64 `json:"loss"`
	Probability float64 `json:"probability"` // share of trials with ALE strictly above Loss
}

// LossExceedance samples the exceedance curve of an ascending series at
// `points` thresholds spread evenly over [min, max].
func LossExceedance(sorted []float64, points int) []ExceedancePoint {
	n := len(sorted)
	if n == 0 || points <= 0 {
		return nil
	}

	lo, hi := sorted[0], sorted[n-1]
	if points == 1 || lo == hi {
		return []ExceedancePoint{{Loss: lo, Probability: exceedance(sorted, lo)}}
	}

	step := (hi - lo) / float64(points-1)
	curve := make([]ExceedancePoint, points)
	for i := range curve {
		threshold := lo + float64(i)*step
		if i == points-1 {
			threshold = hi
		}
		curve[i] = ExceedancePoint{Loss: threshold, Probability: exceedance(sorted, threshold)}
	}
	return curve
}

func exceedance(sorted []float64, threshold float64) float64 {
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] > threshold })
	return float64(len(sorted)-idx) / float64(len(sorted))
}
