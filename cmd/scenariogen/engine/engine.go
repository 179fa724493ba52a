package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fair-mcs/internal/sampling"
	"fair-mcs/internal/simulation"

	"gopkg.in/yaml.v3"
)

type GeneratorConfig struct {
	Profile      string
	Distribution string
	Scale        float64 // multiplier on every monetary estimate
	Iterations   int
}

func tri(min, ml, max float64) sampling.Triple {
	return sampling.Triple{Min: min, MostLikely: ml, Max: max}
}

func vuln(v float64) *float64 { return &v }

// profiles are calibrated for a mid-sized organisation; Scale adjusts them.
var profiles = map[string]func() simulation.Input{
	"phishing": func() simulation.Input {
		return simulation.Input{
			TEF:           tri(4, 12, 40),
			TEFConfidence: 90,
			Vulnerability: vuln(0.15),
			Primary: simulation.PrimaryEstimates{
				ProductivityLoss: tri(500, 2000, 10000),
				ResponseCosts:    tri(1000, 3000, 15000),
				ReplacementCost:  tri(0, 200, 5000),
			},
			LossConfidence: 80,
		}
	},
	"breach": func() simulation.Input {
		return simulation.Input{
			TEF:           tri(0.5, 2, 6),
			TEFConfidence: 80,
			Vulnerability: vuln(0.35),
			Primary: simulation.PrimaryEstimates{
				ProductivityLoss: tri(5000, 25000, 120000),
				ResponseCosts:    tri(2000, 8000, 40000),
				ReplacementCost:  tri(0, 500, 15000),
				Fines:            tri(0, 0, 250000),
			},
			LossConfidence: 85,
			Secondary: &simulation.SecondaryEstimates{
				Enabled:                 true,
				ResponseCost:            tri(1000, 5000, 20000),
				ReputationDamage:        tri(10000, 50000, 500000),
				ExternalStakeholderLoss: tri(0, 10000, 100000),
			},
		}
	},
	"ransomware": func() simulation.Input {
		return simulation.Input{
			TEF:           tri(0.1, 0.5, 2),
			TEFConfidence: 95,
			Vulnerability: vuln(0.4),
			Primary: simulation.PrimaryEstimates{
				ProductivityLoss: tri(50000, 200000, 1500000),
				ResponseCosts:    tri(20000, 80000, 400000),
				ReplacementCost:  tri(5000, 40000, 300000),
			},
			LossConfidence: 90,
			Secondary: &simulation.SecondaryEstimates{
				Enabled:                  true,
				Frequency:                0.1,
				ReputationDamage:         tri(50000, 250000, 2000000),
				CompetitiveAdvantageLoss: tri(0, 50000, 500000),
			},
			Insurance: &simulation.Insurance{Enabled: true, Amount: 100000},
		}
	},
}

// Generate builds a validated scenario for the requested profile.
func Generate(cfg GeneratorConfig) (simulation.Input, error) {
	build, ok := profiles[cfg.Profile]
	if !ok {
		return simulation.Input{}, fmt.Errorf("unknown profile %q", cfg.Profile)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	in := build()
	in.Iterations = cfg.Iterations
	in.DistributionType = cfg.Distribution

	scale := func(t *sampling.Triple) {
		t.Min *= cfg.Scale
		t.MostLikely *= cfg.Scale
		t.Max *= cfg.Scale
	}
	scale(&in.Primary.ProductivityLoss)
	scale(&in.Primary.ResponseCosts)
	scale(&in.Primary.ReplacementCost)
	scale(&in.Primary.Fines)
	if s := in.Secondary; s != nil {
		scale(&s.ResponseCost)
		scale(&s.ProductivityLoss)
		scale(&s.ReputationDamage)
		scale(&s.CompetitiveAdvantageLoss)
		scale(&s.ExternalStakeholderLoss)
	}
	if in.Insurance != nil {
		in.Insurance.Amount *= cfg.Scale
	}

	if err := in.Validate(); err != nil {
		return simulation.Input{}, err
	}
	return in, nil
}

// Save writes the scenario as <name>.yaml or <name>.json and returns the path.
func Save(outDir, name, format string, in simulation.Input) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	var data []byte
	var err error
	switch format {
	case "yaml", "yml":
		data, err = yaml.Marshal(in)
		format = "yaml"
	case "json":
		data, err = json.MarshalIndent(in, "", "  ")
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(outDir, fmt.Sprintf("%s.%s", name, format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
