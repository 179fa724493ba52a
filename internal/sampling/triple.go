package sampling

import "math"

// Triple is a three-point estimate elicited from an analyst.
type Triple struct {
	Min        float64 `json:"min" yaml:"min" jsonschema:"lowest plausible value"`
	MostLikely float64 `json:"mostLikely" yaml:"mostLikely" jsonschema:"most likely value"`
	Max        float64 `json:"max" yaml:"max" jsonschema:"highest plausible value"`
}

// Validate checks min <= mostLikely <= max and that all points are finite.
func (t Triple) Validate() error {
	for _, v := range []float64{t.Min, t.MostLikely, t.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return InvalidParam("", "estimate must be finite, got (%g, %g, %g)", t.Min, t.MostLikely, t.Max)
		}
	}
	if t.Max < t.Min {
		return InvalidParam("", "max %g is below min %g", t.Max, t.Min)
	}
	if t.MostLikely < t.Min || t.MostLikely > t.Max {
		return InvalidParam("", "mostLikely %g outside [%g, %g]", t.MostLikely, t.Min, t.Max)
	}
	return nil
}

// Range returns max - min.
func (t Triple) Range() float64 {
	return t.Max - t.Min
}

// Degenerate reports whether the estimate collapses to a single point.
func (t Triple) Degenerate() bool {
	return t.Max == t.Min
}
