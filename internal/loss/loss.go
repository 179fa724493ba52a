// Package loss composes per-trial loss magnitudes from sampled cost components.
package loss

import (
	"errors"
	"fmt"
)

// MaterialityThreshold is the amount a replacement cost or fine must exceed
// to count towards primary loss. Smaller samples are treated as noise.
const MaterialityThreshold = 1000.0

// ErrDegenerateSecondaryFrequency is returned when a secondary frequency
// override must be rescaled against a zero primary loss-event frequency.
var ErrDegenerateSecondaryFrequency = errors.New("secondary frequency override with zero loss event frequency")

// Primary holds the sampled primary cost components of one trial.
type Primary struct {
	ProductivityLoss float64
	ResponseCosts    float64
	ReplacementCost  float64
	Fines            float64
}

// Total returns productivity plus response costs, adding replacement cost
// and fines only when they exceed MaterialityThreshold.
func (p Primary) Total() float64 {
	total := p.ProductivityLoss + p.ResponseCosts
	if p.ReplacementCost > MaterialityThreshold {
		total += p.ReplacementCost
	}
	if p.Fines > MaterialityThreshold {
		total += p.Fines
	}
	return total
}

// Secondary holds the sampled secondary cost components of one trial.
type Secondary struct {
	ResponseCost             float64
	ProductivityLoss         float64
	ReputationDamage         float64
	CompetitiveAdvantageLoss float64
	ExternalStakeholderLoss  float64
}

// Total sums every secondary component.
func (s Secondary) Total() float64 {
	return s.ResponseCost + s.ProductivityLoss + s.ReputationDamage + s.CompetitiveAdvantageLoss + s.ExternalStakeholderLoss
}

// SecondaryLoss returns the secondary loss of a trial. A positive frequency
// override rescales the sum onto a per-primary-event basis (frequency / lef).
// A negative lef, only reachable through NORMAL tail draws, means the trial
// has no loss events, so the override contributes nothing.
func SecondaryLoss(c Secondary, frequency, lef float64) (float64, error) {
	total := c.Total()
	if frequency <= 0 {
		return total, nil
	}
	if lef < 0 {
		return 0, nil
	}
	if lef == 0 {
		return 0, fmt.Errorf("%w: frequency %g", ErrDegenerateSecondaryFrequency, frequency)
	}
	return total * frequency / lef, nil
}
