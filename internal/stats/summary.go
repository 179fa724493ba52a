package stats

import "slices"

// Percentiles holds the four reported points of a loss distribution.
type Percentiles struct {
	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`
	P95 float64 `json:"p95"`
}

// PercentilesOf extracts P10/P50/P90/P95 from an ascending series.
func PercentilesOf(sorted []float64) Percentiles {
	return Percentiles{
		P10: Percentile(sorted, 10),
		P50: Percentile(sorted, 50),
		P90: Percentile(sorted, 90),
		P95: Percentile(sorted, 95),
	}
}

// Summary is the statistical reduction of a completed simulation.
type Summary struct {
	ALE         Percentiles `json:"ale"`
	PrimaryLoss Percentiles `json:"primaryLoss"`
	Mean        float64     `json:"meanAle"`
	StdDev      float64     `json:"stdDevAle"`
	Min         float64     `json:"minAle"`
	Max         float64     `json:"maxAle"`
}

// Summarize reduces the ALE and primary-loss series of a run.
// Both slices are sorted in place; trial order never affects the outcome.
func Summarize(ale, primary []float64) Summary {
	slices.Sort(ale)
	slices.Sort(primary)

	s := Summary{
		ALE:         PercentilesOf(ale),
		PrimaryLoss: PercentilesOf(primary),
		Mean:        Mean(ale),
		StdDev:      SampleStdDev(ale),
	}
	if len(ale) > 0 {
		s.Min = ale[0]
		s.Max = ale[len(ale)-1]
	}
	return s
}
