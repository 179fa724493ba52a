package simulation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"fair-mcs/internal/sampling"
	"fair-mcs/internal/stats"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// blockSize is the number of consecutive trials sharing one random stream.
// Blocks, not workers, own streams, so results do not depend on parallelism.
const blockSize = 1024

const (
	defaultHistogramBins    = 20
	defaultExceedancePoints = 11
)

// SamplerFactory builds the sampler for one block of trials.
// seed is the run seed and stream the block index.
type SamplerFactory func(dist sampling.Distribution, seed, stream uint64) Sampler

// Engine performs the Monte-Carlo simulation.
type Engine struct {
	workers          int
	seed             uint64
	betaMethod       sampling.BetaMethod
	maxRejections    int
	newSampler       SamplerFactory
	histogramBins    int
	exceedancePoints int
}

// Result is the immutable summary of one run.
type Result struct {
	Iterations   int                     `json:"iterations"`
	Distribution sampling.Distribution   `json:"distribution"`
	Seed         uint64                  `json:"seed"`
	ALE          stats.Percentiles       `json:"ale"`
	PrimaryLoss  stats.Percentiles       `json:"primaryLoss"`
	MeanALE      float64                 `json:"meanAle"`
	StdDevALE    float64                 `json:"stdDevAle"`
	MinALE       float64                 `json:"minAle"`
	MaxALE       float64                 `json:"maxAle"`
	Exceedance   []stats.ExceedancePoint `json:"exceedance,omitempty"`
	Histogram    *Histogram              `json:"histogram,omitempty"`
	Warnings     []string                `json:"warnings,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the number of goroutines running trial blocks.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed fixes the run seed. Zero picks a time-based seed per run.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithBetaMethod selects the Beta construction used by PERT sampling.
func WithBetaMethod(m sampling.BetaMethod) Option {
	return func(e *Engine) {
		e.betaMethod = m
	}
}

// WithMaxRejections bounds the retries of a single draw.
func WithMaxRejections(n int) Option {
	return func(e *Engine) {
		e.maxRejections = n
	}
}

// WithSamplerFactory replaces the seeded samplers, e.g. with deterministic stubs.
func WithSamplerFactory(f SamplerFactory) Option {
	return func(e *Engine) {
		e.newSampler = f
	}
}

// WithHistogramBins sets the number of ALE histogram bins; 0 disables it.
func WithHistogramBins(n int) Option {
	return func(e *Engine) {
		e.histogramBins = n
	}
}

// WithExceedancePoints sets the resolution of the exceedance curve; 0 disables it.
func WithExceedancePoints(n int) Option {
	return func(e *Engine) {
		e.exceedancePoints = n
	}
}

// NewEngine creates an Engine; without options it uses every CPU and a fresh seed per run.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		workers:          runtime.GOMAXPROCS(0),
		betaMethod:       sampling.BetaGamma,
		maxRejections:    sampling.DefaultMaxRejections,
		histogramBins:    defaultHistogramBins,
		exceedancePoints: defaultExceedancePoints,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.newSampler == nil {
		e.newSampler = e.seededSampler
	}
	return e
}

// Run simulates in with a default Engine.
func Run(ctx context.Context, in Input) (Result, error) {
	return NewEngine().Run(ctx, in)
}

func (e *Engine) seededSampler(dist sampling.Distribution, seed, stream uint64) Sampler {
	src := rand.New(rand.NewPCG(seed, stream))
	return sampling.New(dist, src,
		sampling.WithBetaMethod(e.betaMethod),
		sampling.WithMaxRejections(e.maxRejections),
	)
}

// Run performs the requested number of trials and summarises them.
// Cancellation of ctx is observed between trials.
func (e *Engine) Run(ctx context.Context, in Input) (Result, error) {
	p, err := newPlan(in)
	if err != nil {
		return Result{}, err
	}
	for _, w := range p.warnings {
		log.Warn().Str("distribution", in.DistributionType).Msg(w)
	}

	seed := e.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	blocks := (p.iterations + blockSize - 1) / blockSize
	workers := min(e.workers, blocks)

	log.Debug().
		Int("iterations", p.iterations).
		Str("distribution", string(p.dist)).
		Uint64("seed", seed).
		Int("workers", workers).
		Msg("Starting FAIR simulation")
	started := time.Now()

	ale := make([]float64, p.iterations)
	primary := make([]float64, p.iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for b := 0; b < blocks; b++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return e.runBlock(gctx, p, seed, b, ale, primary)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	// Blocks never started after a cancellation report nothing to the group.
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	summary := stats.Summarize(ale, primary)
	res := Result{
		Iterations:   p.iterations,
		Distribution: p.dist,
		Seed:         seed,
		ALE:          summary.ALE,
		PrimaryLoss:  summary.PrimaryLoss,
		MeanALE:      summary.Mean,
		StdDevALE:    summary.StdDev,
		MinALE:       summary.Min,
		MaxALE:       summary.Max,
		Exceedance:   stats.LossExceedance(ale, e.exceedancePoints),
		Warnings:     p.warnings,
	}
	if e.histogramBins > 0 {
		res.Histogram = NewHistogram(ale, e.histogramBins)
	}

	log.Debug().
		Dur("elapsed", time.Since(started)).
		Float64("ale_p50", res.ALE.P50).
		Float64("ale_p95", res.ALE.P95).
		Msg("FAIR simulation finished")

	return res, nil
}

// runBlock fills the disjoint output region owned by block b.
func (e *Engine) runBlock(ctx context.Context, p *plan, seed uint64, b int, ale, primary []float64) error {
	lo := b * blockSize
	hi := min(lo+blockSize, p.iterations)
	s := e.newSampler(p.dist, seed, uint64(b))

	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		out, err := p.trial(s)
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		ale[i] = out.ALE
		primary[i] = out.PrimaryLoss
	}
	return nil
}
