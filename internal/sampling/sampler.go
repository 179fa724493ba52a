package sampling

import (
	"fmt"
	"math"
)

// DefaultMaxRejections bounds every rejection loop of a single draw.
const DefaultMaxRejections = 100000

// Source supplies uniform variates in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// Sampler draws values from one distribution using an injected Source.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	dist          Distribution
	src           Source
	betaMethod    BetaMethod
	maxRejections int
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithBetaMethod selects how PERT draws its Beta variate.
func WithBetaMethod(m BetaMethod) Option {
	return func(s *Sampler) {
		s.betaMethod = m
	}
}

// WithMaxRejections bounds retries of rejection-based draws.
func WithMaxRejections(n int) Option {
	return func(s *Sampler) {
		if n > 0 {
			s.maxRejections = n
		}
	}
}

// New creates a Sampler for dist reading entropy from src.
func New(dist Distribution, src Source, opts ...Option) *Sampler {
	s := &Sampler{
		dist:          dist,
		src:           src,
		betaMethod:    BetaGamma,
		maxRejections: DefaultMaxRejections,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Distribution returns the law this sampler draws from.
func (s *Sampler) Distribution() Distribution {
	return s.dist
}

// Sample draws one value for the estimate t.
// A degenerate triple (min == max) returns min without consuming entropy.
func (s *Sampler) Sample(t Triple, confidence float64) (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if t.Degenerate() {
		return t.Min, nil
	}

	switch s.dist {
	case Normal:
		return t.MostLikely + s.standardNormal()*normalStdDev(t), nil
	case LogNormal:
		return s.logNormal(t)
	case Uniform:
		return t.Min + s.src.Float64()*t.Range(), nil
	default:
		alpha, beta := PERTShape(t, confidence)
		x, err := s.beta(alpha, beta)
		if err != nil {
			return 0, err
		}
		return t.Min + x*t.Range(), nil
	}
}

// normalStdDev approximates a standard deviation from a three-point range.
func normalStdDev(t Triple) float64 {
	return t.Range() / 4
}

func (s *Sampler) logNormal(t Triple) (float64, error) {
	median := t.MostLikely
	if median <= 0 {
		median = (t.Min + t.Max) / 2
	}
	if median <= 0 {
		return 0, InvalidParam("", "lognormal needs a positive median, got range [%g, %g]", t.Min, t.Max)
	}
	sd := normalStdDev(t)
	sigma := math.Sqrt(math.Log(1 + (sd/median)*(sd/median)))
	geoStdDev := math.Exp(sigma)
	return math.Exp(math.Log(median) + s.standardNormal()*math.Log(geoStdDev)), nil
}

// standardNormal is the Box-Muller transform over two uniform draws.
func (s *Sampler) standardNormal() float64 {
	// 1-u keeps the logarithm argument in (0, 1].
	u1 := 1 - s.src.Float64()
	u2 := s.src.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func (s *Sampler) beta(alpha, beta float64) (float64, error) {
	switch s.betaMethod {
	case BetaRejection:
		return s.betaRejection(alpha, beta)
	default:
		return s.betaGamma(alpha, beta)
	}
}

func notComputable(alpha, beta float64, attempts int) error {
	return fmt.Errorf("%w: beta(%.4g, %.4g) rejected %d proposals", ErrNotComputable, alpha, beta, attempts)
}
