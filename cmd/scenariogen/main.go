package main

import (
	"flag"
	"fmt"
	"os"

	"fair-mcs/cmd/scenariogen/engine"
)

func main() {
	profile := flag.String("profile", "breach", "Profile to generate: phishing, breach, ransomware")
	distribution := flag.String("distribution", "PERT", "Distribution to use: PERT, NORMAL, LOGNORMAL, UNIFORM")
	scale := flag.Float64("scale", 1.0, "Multiplier applied to every loss estimate (organisation size)")
	iterations := flag.Int("iterations", 10000, "Number of trials the scenario requests")
	format := flag.String("format", "yaml", "Output format: yaml, json")
	outDir := flag.String("out", "./scenarios", "Output directory for scenario files")
	flag.Parse()

	cfg := engine.GeneratorConfig{
		Profile:      *profile,
		Distribution: *distribution,
		Scale:        *scale,
		Iterations:   *iterations,
	}

	fmt.Printf("Generating profile '%s' (Distribution: %s, Scale: %.2f) to %s...\n", cfg.Profile, cfg.Distribution, cfg.Scale, *outDir)

	in, err := engine.Generate(cfg)
	if err != nil {
		fmt.Printf("Failed to generate scenario: %v\n", err)
		os.Exit(1)
	}

	path, err := engine.Save(*outDir, cfg.Profile, *format, in)
	if err != nil {
		fmt.Printf("Failed to save scenario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Done: %s\n", path)
}
