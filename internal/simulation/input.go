package simulation

import (
	"fmt"
	"math"

	"fair-mcs/internal/sampling"
)

const (
	// DefaultIterations is used when an input leaves iterations at zero.
	DefaultIterations = 10000

	// MaxIterations bounds the memory held by the two output series.
	MaxIterations = 10_000_000

	// DefaultVulnerability applies when an input omits vulnerability.
	DefaultVulnerability = 0.5
)

// Input is the fully specified descriptor of one simulation run.
type Input struct {
	Iterations       int                 `json:"iterations,omitempty" yaml:"iterations" jsonschema:"number of trials; 0 uses the default of 10000"`
	DistributionType string              `json:"distributionType,omitempty" yaml:"distributionType" jsonschema:"PERT, NORMAL, LOGNORMAL or UNIFORM; unknown names fall back to PERT"`
	TEF              sampling.Triple     `json:"tef" yaml:"tef" jsonschema:"threat event frequency per year"`
	TEFConfidence    float64             `json:"tefConfidence,omitempty" yaml:"tefConfidence" jsonschema:"confidence percentage of the TEF estimate; 95 or more concentrates PERT"`
	Vulnerability    *float64            `json:"vulnerability,omitempty" yaml:"vulnerability" jsonschema:"probability in [0,1] that a threat event becomes a loss event; defaults to 0.5"`
	Primary          PrimaryEstimates    `json:"primary,omitempty" yaml:"primary" jsonschema:"primary loss component estimates"`
	LossConfidence   float64             `json:"lossConfidence,omitempty" yaml:"lossConfidence" jsonschema:"confidence percentage shared by every cost component"`
	Secondary        *SecondaryEstimates `json:"secondary,omitempty" yaml:"secondary" jsonschema:"optional secondary loss block"`
	Insurance        *Insurance          `json:"insurance,omitempty" yaml:"insurance" jsonschema:"optional insurance deduction"`
}

// PrimaryEstimates are the primary loss component estimates.
type PrimaryEstimates struct {
	ProductivityLoss sampling.Triple `json:"productivityLoss,omitempty" yaml:"productivityLoss"`
	ResponseCosts    sampling.Triple `json:"responseCosts,omitempty" yaml:"responseCosts"`
	ReplacementCost  sampling.Triple `json:"replacementCost,omitempty" yaml:"replacementCost"`
	Fines            sampling.Triple `json:"fines,omitempty" yaml:"fines"`
}

// SecondaryEstimates are the secondary loss component estimates.
type SecondaryEstimates struct {
	Enabled                  bool            `json:"enabled,omitempty" yaml:"enabled"`
	Frequency                float64         `json:"frequency,omitempty" yaml:"frequency" jsonschema:"optional secondary loss event frequency; rescales secondary loss by frequency/LEF when positive"`
	ResponseCost             sampling.Triple `json:"responseCost,omitempty" yaml:"responseCost"`
	ProductivityLoss         sampling.Triple `json:"productivityLoss,omitempty" yaml:"productivityLoss"`
	ReputationDamage         sampling.Triple `json:"reputationDamage,omitempty" yaml:"reputationDamage"`
	CompetitiveAdvantageLoss sampling.Triple `json:"competitiveAdvantageLoss,omitempty" yaml:"competitiveAdvantageLoss"`
	ExternalStakeholderLoss  sampling.Triple `json:"externalStakeholderLoss,omitempty" yaml:"externalStakeholderLoss"`
}

// Insurance deducts a fixed amount from every trial's ALE.
type Insurance struct {
	Enabled bool    `json:"enabled,omitempty" yaml:"enabled"`
	Amount  float64 `json:"amount,omitempty" yaml:"amount" jsonschema:"deductible or coverage amount subtracted from each trial ALE"`
}

// Validate checks every field of the input and labels the first failure.
func (in Input) Validate() error {
	_, err := newPlan(in)
	return err
}

// plan is a validated, defaulted Input ready for trials.
type plan struct {
	iterations    int
	dist          sampling.Distribution
	tef           sampling.Triple
	tefConfidence float64
	vulnerability float64
	primary       PrimaryEstimates
	lossConf      float64
	secondary     *SecondaryEstimates
	insured       bool
	insurance     float64
	warnings      []string
}

func newPlan(in Input) (*plan, error) {
	p := &plan{
		iterations:    in.Iterations,
		tef:           in.TEF,
		tefConfidence: in.TEFConfidence,
		vulnerability: DefaultVulnerability,
		primary:       in.Primary,
		lossConf:      in.LossConfidence,
	}

	switch {
	case in.Iterations < 0:
		return nil, sampling.InvalidParam("iterations", "must not be negative, got %d", in.Iterations)
	case in.Iterations > MaxIterations:
		return nil, sampling.InvalidParam("iterations", "must not exceed %d, got %d", MaxIterations, in.Iterations)
	case in.Iterations == 0:
		p.iterations = DefaultIterations
	}

	dist, ok := sampling.ParseDistribution(in.DistributionType)
	p.dist = dist
	if !ok {
		p.warnings = append(p.warnings, fmt.Sprintf("distribution %q not recognised; falling back to PERT", in.DistributionType))
	}

	if err := validConfidence("tefConfidence", in.TEFConfidence); err != nil {
		return nil, err
	}
	if err := validConfidence("lossConfidence", in.LossConfidence); err != nil {
		return nil, err
	}

	if in.Vulnerability != nil {
		v := *in.Vulnerability
		if math.IsNaN(v) || v < 0 || v > 1 {
			return nil, sampling.InvalidParam("vulnerability", "must be within [0, 1], got %g", v)
		}
		p.vulnerability = v
	}

	triples := []struct {
		field string
		t     sampling.Triple
	}{
		{"tef", in.TEF},
		{"primary.productivityLoss", in.Primary.ProductivityLoss},
		{"primary.responseCosts", in.Primary.ResponseCosts},
		{"primary.replacementCost", in.Primary.ReplacementCost},
		{"primary.fines", in.Primary.Fines},
	}

	if s := in.Secondary; s != nil && s.Enabled {
		if math.IsNaN(s.Frequency) || math.IsInf(s.Frequency, 0) || s.Frequency < 0 {
			return nil, sampling.InvalidParam("secondary.frequency", "must be a non-negative number, got %g", s.Frequency)
		}
		triples = append(triples, []struct {
			field string
			t     sampling.Triple
		}{
			{"secondary.responseCost", s.ResponseCost},
			{"secondary.productivityLoss", s.ProductivityLoss},
			{"secondary.reputationDamage", s.ReputationDamage},
			{"secondary.competitiveAdvantageLoss", s.CompetitiveAdvantageLoss},
			{"secondary.externalStakeholderLoss", s.ExternalStakeholderLoss},
		}...)
		p.secondary = s
	}

	for _, tr := range triples {
		if err := tr.t.Validate(); err != nil {
			return nil, sampling.WithField(err, tr.field)
		}
		// Frequencies and costs are magnitudes.
		if tr.t.Min < 0 {
			return nil, sampling.InvalidParam(tr.field, "must not be negative, got min %g", tr.t.Min)
		}
	}

	if ins := in.Insurance; ins != nil && ins.Enabled {
		if math.IsNaN(ins.Amount) || math.IsInf(ins.Amount, 0) || ins.Amount < 0 {
			return nil, sampling.InvalidParam("insurance.amount", "must be a non-negative number, got %g", ins.Amount)
		}
		p.insured = true
		p.insurance = ins.Amount
	}

	return p, nil
}

func validConfidence(field string, c float64) error {
	if math.IsNaN(c) || c < 0 || c > 100 {
		return sampling.InvalidParam(field, "must be a percentage within [0, 100], got %g", c)
	}
	return nil
}
