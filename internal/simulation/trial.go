package simulation

import (
	"fmt"
	"math"

	"fair-mcs/internal/loss"
	"fair-mcs/internal/sampling"
)

// Sampler draws one value for a three-point estimate.
type Sampler interface {
	Sample(t sampling.Triple, confidence float64) (float64, error)
}

// TrialOutcome is the result of one independent trial.
type TrialOutcome struct {
	TEF           float64
	LEF           float64
	PrimaryLoss   float64
	SecondaryLoss float64
	ALE           float64
}

func (p *plan) trial(s Sampler) (TrialOutcome, error) {
	var out TrialOutcome

	tef, err := s.Sample(p.tef, p.tefConfidence)
	if err != nil {
		return out, fmt.Errorf("sample tef: %w", err)
	}
	out.TEF = tef
	out.LEF = tef * p.vulnerability

	var pc loss.Primary
	for _, c := range []struct {
		name string
		t    sampling.Triple
		dst  *float64
	}{
		{"productivityLoss", p.primary.ProductivityLoss, &pc.ProductivityLoss},
		{"responseCosts", p.primary.ResponseCosts, &pc.ResponseCosts},
		{"replacementCost", p.primary.ReplacementCost, &pc.ReplacementCost},
		{"fines", p.primary.Fines, &pc.Fines},
	} {
		if *c.dst, err = s.Sample(c.t, p.lossConf); err != nil {
			return out, fmt.Errorf("sample primary %s: %w", c.name, err)
		}
	}
	out.PrimaryLoss = pc.Total()

	if sec := p.secondary; sec != nil {
		var sc loss.Secondary
		for _, c := range []struct {
			name string
			t    sampling.Triple
			dst  *float64
		}{
			{"responseCost", sec.ResponseCost, &sc.ResponseCost},
			{"productivityLoss", sec.ProductivityLoss, &sc.ProductivityLoss},
			{"reputationDamage", sec.ReputationDamage, &sc.ReputationDamage},
			{"competitiveAdvantageLoss", sec.CompetitiveAdvantageLoss, &sc.CompetitiveAdvantageLoss},
			{"externalStakeholderLoss", sec.ExternalStakeholderLoss, &sc.ExternalStakeholderLoss},
		} {
			if *c.dst, err = s.Sample(c.t, p.lossConf); err != nil {
				return out, fmt.Errorf("sample secondary %s: %w", c.name, err)
			}
		}
		if out.SecondaryLoss, err = loss.SecondaryLoss(sc, sec.Frequency, out.LEF); err != nil {
			return out, err
		}
	}

	ale := out.LEF * (out.PrimaryLoss + out.SecondaryLoss)
	if p.insured {
		ale -= p.insurance
	}
	// NORMAL draws can go negative; a trial never reports a negative loss.
	out.ALE = math.Max(0, ale)
	return out, nil
}
