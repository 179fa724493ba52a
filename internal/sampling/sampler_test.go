package sampling

import (
	"errors"
	"math"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always returns the same uniform variate.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

// countingSource records how many variates were consumed.
type countingSource struct {
	calls int
}

func (c *countingSource) Float64() float64 {
	c.calls++
	return 0.5
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0x5eed))
}

func drawMany(t *testing.T, s *Sampler, tr Triple, confidence float64, n int) []float64 {
	t.Helper()
	out := make([]float64, n)
	for i := range out {
		v, err := s.Sample(tr, confidence)
		require.NoError(t, err)
		out[i] = v
	}
	return out
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	m := mean(values)
	ss := 0.0
	for _, v := range values {
		ss += (v - m) * (v - m)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}

func TestParseDistribution(t *testing.T) {
	tests := []struct {
		name   string
		want   Distribution
		wantOK bool
	}{
		{"", PERT, true},
		{"pert", PERT, true},
		{"NORMAL", Normal, true},
		{" lognormal ", LogNormal, true},
		{"Uniform", Uniform, true},
		{"triangular", PERT, false},
		{"NORMALL", PERT, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDistribution(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestPERTShape(t *testing.T) {
	alpha, beta := PERTShape(Triple{Min: 0, MostLikely: 25, Max: 100}, 95)
	assert.InDelta(t, 2.0, alpha, 1e-12)
	assert.InDelta(t, 4.0, beta, 1e-12)

	alpha, beta = PERTShape(Triple{Min: 0, MostLikely: 25, Max: 100}, 90)
	assert.InDelta(t, 1.5, alpha, 1e-12)
	assert.InDelta(t, 2.5, beta, 1e-12)
}

func TestSample_DegenerateTripleIsPointMass(t *testing.T) {
	for _, dist := range Distributions {
		t.Run(string(dist), func(t *testing.T) {
			src := &countingSource{}
			s := New(dist, src)
			for i := 0; i < 100; i++ {
				v, err := s.Sample(Triple{Min: 100, MostLikely: 100, Max: 100}, 90)
				require.NoError(t, err)
				assert.Equal(t, 100.0, v)
			}
			assert.Zero(t, src.calls, "degenerate estimates must not consume entropy")
		})
	}
}

func TestSample_UniformDegenerateIgnoresDraws(t *testing.T) {
	for _, u := range []float64{0, 0.25, 0.999999} {
		s := New(Uniform, constSource(u))
		v, err := s.Sample(Triple{Min: 100, MostLikely: 100, Max: 100}, 95)
		require.NoError(t, err)
		assert.Equal(t, 100.0, v)
	}
}

func TestSample_InvalidTriples(t *testing.T) {
	tests := []struct {
		name string
		tr   Triple
	}{
		{"MaxBelowMin", Triple{Min: 10, MostLikely: 5, Max: 1}},
		{"MostLikelyAboveMax", Triple{Min: 1, MostLikely: 20, Max: 10}},
		{"MostLikelyBelowMin", Triple{Min: 5, MostLikely: 1, Max: 10}},
		{"NaN", Triple{Min: 0, MostLikely: math.NaN(), Max: 10}},
		{"Inf", Triple{Min: 0, MostLikely: 1, Max: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, dist := range Distributions {
				_, err := New(dist, newRand(1)).Sample(tt.tr, 90)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameter)

				var pe *ParamError
				assert.True(t, errors.As(err, &pe))
			}
		})
	}
}

func TestSample_UniformStaysInRange(t *testing.T) {
	tr := Triple{Min: 10, MostLikely: 50, Max: 90}
	values := drawMany(t, New(Uniform, newRand(7)), tr, 90, 50000)
	for _, v := range values {
		require.GreaterOrEqual(t, v, 10.0)
		require.Less(t, v, 90.0)
	}
	assert.InDelta(t, 50.0, mean(values), 0.5)
}

func TestSample_PERTMoments(t *testing.T) {
	tr := Triple{Min: 0, MostLikely: 25, Max: 100}

	tests := []struct {
		name       string
		method     BetaMethod
		confidence float64
		wantMean   float64
	}{
		// Mean of the generalised PERT is (min + max + lambda*mostLikely) / (lambda + 2).
		{"GammaLambda4", BetaGamma, 95, 200.0 / 6},
		{"GammaLambda2", BetaGamma, 90, 150.0 / 4},
		{"RejectionLambda4", BetaRejection, 95, 200.0 / 6},
		{"RejectionLambda2", BetaRejection, 90, 150.0 / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(PERT, newRand(42), WithBetaMethod(tt.method))
			values := drawMany(t, s, tr, tt.confidence, 100000)
			for _, v := range values {
				require.GreaterOrEqual(t, v, 0.0)
				require.LessOrEqual(t, v, 100.0)
			}
			assert.InDelta(t, tt.wantMean, mean(values), 0.5)
		})
	}
}

func TestSample_BetaMethodsAgree(t *testing.T) {
	tr := Triple{Min: 1000, MostLikely: 5000, Max: 20000}
	g := drawMany(t, New(PERT, newRand(3), WithBetaMethod(BetaGamma)), tr, 90, 80000)
	r := drawMany(t, New(PERT, newRand(4), WithBetaMethod(BetaRejection)), tr, 90, 80000)

	sort.Float64s(g)
	sort.Float64s(r)
	for _, q := range []float64{0.1, 0.5, 0.9} {
		idx := int(q * float64(len(g)))
		assert.InEpsilon(t, g[idx], r[idx], 0.03, "quantile %.1f", q)
	}
}

func TestSample_NormalMoments(t *testing.T) {
	tr := Triple{Min: 0, MostLikely: 50, Max: 100}
	values := drawMany(t, New(Normal, newRand(11)), tr, 90, 100000)
	assert.InDelta(t, 50.0, mean(values), 0.5)
	assert.InDelta(t, 25.0, stddev(values), 0.5)
}

func TestSample_LogNormalMedian(t *testing.T) {
	tr := Triple{Min: 10, MostLikely: 50, Max: 90}
	values := drawMany(t, New(LogNormal, newRand(13)), tr, 90, 100000)
	for _, v := range values {
		require.Greater(t, v, 0.0)
	}
	sort.Float64s(values)
	assert.InDelta(t, 50.0, values[len(values)/2], 1.0)
}

func TestSample_LogNormalUsesMidpointForZeroMode(t *testing.T) {
	tr := Triple{Min: 0, MostLikely: 0, Max: 200}
	values := drawMany(t, New(LogNormal, newRand(17)), tr, 90, 50000)
	sort.Float64s(values)
	assert.InDelta(t, 100.0, values[len(values)/2], 2.0)
}

func TestSample_LogNormalRejectsNonPositiveMedian(t *testing.T) {
	_, err := New(LogNormal, newRand(1)).Sample(Triple{Min: -100, MostLikely: -10, Max: 50}, 90)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSample_RejectionIsBounded(t *testing.T) {
	// Mode sits at max; a proposal of 0.99 paired with u = 0.99 is always rejected.
	s := New(PERT, constSource(0.99), WithBetaMethod(BetaRejection), WithMaxRejections(50))
	_, err := s.Sample(Triple{Min: 0, MostLikely: 10, Max: 10}, 95)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotComputable)
}

func TestSample_SkewedEstimatesTerminate(t *testing.T) {
	tr := Triple{Min: 0, MostLikely: 1e6, Max: 1e6}
	for _, m := range []BetaMethod{BetaGamma, BetaRejection} {
		s := New(PERT, newRand(5), WithBetaMethod(m))
		values := drawMany(t, s, tr, 95, 1000)
		for _, v := range values {
			require.GreaterOrEqual(t, v, 0.0)
			require.LessOrEqual(t, v, 1e6)
		}
	}
}

func TestSample_SeededSequencesRepeat(t *testing.T) {
	tr := Triple{Min: 1, MostLikely: 5, Max: 10}
	a := drawMany(t, New(PERT, newRand(99)), tr, 90, 100)
	b := drawMany(t, New(PERT, newRand(99)), tr, 90, 100)
	assert.Equal(t, a, b)
}

func TestParseBetaMethod(t *testing.T) {
	m, err := ParseBetaMethod("")
	require.NoError(t, err)
	assert.Equal(t, BetaGamma, m)

	m, err = ParseBetaMethod("Rejection")
	require.NoError(t, err)
	assert.Equal(t, BetaRejection, m)

	_, err = ParseBetaMethod("inversion")
	assert.Error(t, err)
}

func TestWithField(t *testing.T) {
	err := WithField(InvalidParam("min", "bad"), "tef")
	assert.EqualError(t, err, "invalid parameter: tef.min: bad")

	err = WithField(InvalidParam("", "bad"), "primary.fines")
	assert.EqualError(t, err, "invalid parameter: primary.fines: bad")

	plain := errors.New("boom")
	assert.Equal(t, plain, WithField(plain, "tef"))
}
