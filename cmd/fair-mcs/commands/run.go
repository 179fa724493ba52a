package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"fair-mcs/internal/report"
	"fair-mcs/internal/scenario"
	"fair-mcs/internal/simulation"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type runFlags struct {
	scenario   string
	seed       uint64
	workers    int
	iterations int
	format     string
	charts     bool
	open       bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a scenario file and print the report",
		Example: `  fair-mcs run --scenario ransomware.yaml --seed 42
  fair-mcs run --scenario breach.json --format markdown --charts --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.scenario, "scenario", "s", "", "scenario file (.yaml, .yml or .json)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for a reproducible run (0 uses FAIR_SEED or a fresh seed)")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "parallel workers (0 uses FAIR_WORKERS or every CPU)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "override the scenario's trial count")
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", "output format: json or markdown")
	cmd.Flags().BoolVar(&f.charts, "charts", false, "include Mermaid charts in the markdown report")
	cmd.Flags().BoolVar(&f.open, "open", false, "save the markdown report and open it")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func runScenario(cmd *cobra.Command, f runFlags) error {
	if f.format != "json" && f.format != "markdown" {
		return fmt.Errorf("unknown format %q (want json or markdown)", f.format)
	}

	in, err := scenario.Load(f.scenario)
	if err != nil {
		return err
	}
	if f.iterations > 0 {
		in.Iterations = f.iterations
	}
	in = cfg.Simulation.ApplyDefaults(in)

	opts := cfg.Simulation.EngineOptions()
	if f.seed != 0 {
		opts = append(opts, simulation.WithSeed(f.seed))
	}
	if f.workers > 0 {
		opts = append(opts, simulation.WithWorkers(f.workers))
	}

	res, err := simulation.NewEngine(opts...).Run(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("simulate %s: %w", f.scenario, err)
	}

	env := report.New(in, res, report.Options{
		Currency: cfg.Currency,
		Charts:   f.charts || cfg.EnableMermaidCharts,
	})
	log.Info().
		Str("runId", env.RunID.String()).
		Uint64("seed", res.Seed).
		Float64("ale_p50", res.ALE.P50).
		Msg("Simulation complete")

	if f.open {
		path, err := report.Save(env, cfg.ReportDir)
		if err != nil {
			return err
		}
		if err := browser.OpenFile(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Failed to open report")
		}
	}

	return writeEnvelope(cmd.OutOrStdout(), env, f.format)
}

func writeEnvelope(w io.Writer, env report.Envelope, format string) error {
	if format == "markdown" {
		_, err := io.WriteString(w, env.Markdown)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
