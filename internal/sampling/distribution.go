package sampling

import "strings"

// Distribution names the sampling law used for every stochastic quantity of a run.
type Distribution string

const (
	PERT      Distribution = "PERT"
	Normal    Distribution = "NORMAL"
	LogNormal Distribution = "LOGNORMAL"
	Uniform   Distribution = "UNIFORM"
)

// Distributions lists the supported laws.
var Distributions = []Distribution{PERT, Normal, LogNormal, Uniform}

// ParseDistribution resolves a case-insensitive name. An empty name is PERT.
// Unknown names also resolve to PERT, with ok=false so callers can flag it.
func ParseDistribution(name string) (dist Distribution, ok bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "" {
		return PERT, true
	}
	for _, d := range Distributions {
		if string(d) == n {
			return d, true
		}
	}
	return PERT, false
}

// PERTLambda returns the concentration parameter for a confidence percentage.
func PERTLambda(confidence float64) float64 {
	if confidence >= 95 {
		return 4.0
	}
	return 2.0
}

// PERTShape derives the Beta shape parameters for a non-degenerate triple.
func PERTShape(t Triple, confidence float64) (alpha, beta float64) {
	lambda := PERTLambda(confidence)
	r := t.Range()
	alpha = 1 + lambda*(t.MostLikely-t.Min)/r
	beta = 1 + lambda*(t.Max-t.MostLikely)/r
	return alpha, beta
}
