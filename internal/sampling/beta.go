package sampling

import (
	"fmt"
	"math"
	"strings"
)

// BetaMethod selects the Beta variate construction used by PERT.
type BetaMethod string

const (
	// BetaGamma draws Ga ~ Gamma(alpha), Gb ~ Gamma(beta) and returns Ga/(Ga+Gb).
	// It follows the same law as BetaRejection but consumes a different
	// pseudorandom sequence, so seeded runs differ between the two.
	BetaGamma BetaMethod = "gamma"

	// BetaRejection accepts uniform proposals against the unnormalised density.
	BetaRejection BetaMethod = "rejection"
)

// ParseBetaMethod resolves a method name; empty means BetaGamma.
func ParseBetaMethod(name string) (BetaMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(BetaGamma):
		return BetaGamma, nil
	case string(BetaRejection):
		return BetaRejection, nil
	default:
		return "", fmt.Errorf("unknown beta method %q (must be gamma or rejection)", name)
	}
}

func (s *Sampler) betaGamma(alpha, beta float64) (float64, error) {
	ga, err := s.gamma(alpha)
	if err != nil {
		return 0, err
	}
	gb, err := s.gamma(beta)
	if err != nil {
		return 0, err
	}
	return ga / (ga + gb), nil
}

// gamma draws Gamma(shape, 1) with the Marsaglia-Tsang squeeze.
func (s *Sampler) gamma(shape float64) (float64, error) {
	if !(shape > 0) || math.IsInf(shape, 0) {
		return 0, InvalidParam("", "gamma shape must be positive and finite, got %g", shape)
	}
	if shape < 1 {
		g, err := s.gamma(shape + 1)
		if err != nil {
			return 0, err
		}
		u := 1 - s.src.Float64()
		return g * math.Pow(u, 1/shape), nil
	}

	d := shape - 1.0/3
	c := 1 / math.Sqrt(9*d)
	for i := 0; i < s.maxRejections; i++ {
		x := s.standardNormal()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := s.src.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v, nil
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v, nil
		}
	}
	return 0, fmt.Errorf("%w: gamma(%.4g) rejected %d proposals", ErrNotComputable, shape, s.maxRejections)
}

func (s *Sampler) betaRejection(alpha, beta float64) (float64, error) {
	if alpha < 1 || beta < 1 {
		return 0, InvalidParam("", "rejection sampling needs alpha, beta >= 1, got (%g, %g)", alpha, beta)
	}

	// The density peaks at the mode; it is 1 at a boundary when either shape is 1.
	logMax := 0.0
	if alpha > 1 && beta > 1 {
		logMax = betaLogDensity((alpha-1)/(alpha+beta-2), alpha, beta)
	}

	for i := 0; i < s.maxRejections; i++ {
		x := s.src.Float64()
		u := s.src.Float64()
		if math.Log(u) < betaLogDensity(x, alpha, beta)-logMax {
			return x, nil
		}
	}
	return 0, notComputable(alpha, beta, s.maxRejections)
}

// betaLogDensity is log(x^(alpha-1) * (1-x)^(beta-1)).
func betaLogDensity(x, alpha, beta float64) float64 {
	var lp float64
	if alpha != 1 {
		lp += (alpha - 1) * math.Log(x)
	}
	if beta != 1 {
		lp += (beta - 1) * math.Log1p(-x)
	}
	return lp
}
