package mcp

import (
	"context"
	"fmt"

	"fair-mcs/internal/loss"
	"fair-mcs/internal/report"
	"fair-mcs/internal/sampling"
	"fair-mcs/internal/simulation"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ModelDescription documents the loss model for clients.
type ModelDescription struct {
	Formula              []string `json:"formula"`
	Distributions        []string `json:"distributions"`
	DefaultDistribution  string   `json:"defaultDistribution"`
	DefaultIterations    int      `json:"defaultIterations"`
	MaxIterations        int      `json:"maxIterations"`
	DefaultVulnerability float64  `json:"defaultVulnerability"`
	MaterialityThreshold float64  `json:"materialityThreshold"`
	BetaMethod           string   `json:"betaMethod"`
	Percentiles          []string `json:"percentiles"`
	Currency             string   `json:"currency"`
}

func (s *Server) handleRunSimulation(ctx context.Context, _ *sdk.CallToolRequest, args RunArgs) (*sdk.CallToolResult, any, error) {
	in := s.cfg.Simulation.ApplyDefaults(args.Scenario)

	opts := s.cfg.Simulation.EngineOptions()
	if args.Seed != 0 {
		opts = append(opts, simulation.WithSeed(args.Seed))
	}

	log.Info().
		Int("iterations", in.Iterations).
		Str("distribution", in.DistributionType).
		Msg("Tool call: run_fair_simulation")

	res, err := simulation.NewEngine(opts...).Run(ctx, in)
	if err != nil {
		log.Error().Err(err).Msg("FAIR simulation failed")
		return nil, nil, fmt.Errorf("simulation failed: %w", err)
	}

	env := report.New(in, res, report.Options{
		Currency: s.cfg.Currency,
		Charts:   args.IncludeCharts || s.cfg.EnableMermaidCharts,
	})
	return textResult(formatResult(env)), nil, nil
}

func (s *Server) handleDescribeModel(_ context.Context, _ *sdk.CallToolRequest, _ DescribeArgs) (*sdk.CallToolResult, any, error) {
	dists := make([]string, 0, len(sampling.Distributions))
	for _, d := range sampling.Distributions {
		dists = append(dists, string(d))
	}

	iterations := s.cfg.Simulation.Iterations
	if iterations <= 0 {
		iterations = simulation.DefaultIterations
	}
	beta := s.cfg.Simulation.BetaMethod
	if beta == "" {
		beta = sampling.BetaGamma
	}

	desc := ModelDescription{
		Formula: []string{
			"LEF = TEF * vulnerability",
			"primary = productivityLoss + responseCosts + replacementCost + fines (replacement and fines only above the materiality threshold)",
			"secondary = sum of secondary components, rescaled by frequency / LEF when a secondary frequency is set",
			"ALE = max(0, LEF * (primary + secondary) - insurance)",
		},
		Distributions:        dists,
		DefaultDistribution:  string(sampling.PERT),
		DefaultIterations:    iterations,
		MaxIterations:        simulation.MaxIterations,
		DefaultVulnerability: simulation.DefaultVulnerability,
		MaterialityThreshold: loss.MaterialityThreshold,
		BetaMethod:           string(beta),
		Percentiles:          []string{"P10", "P50", "P90", "P95"},
		Currency:             s.cfg.Currency,
	}
	return textResult(formatResult(desc)), nil, nil
}
