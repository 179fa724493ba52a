package simulation

import (
	"testing"

	"fair-mcs/internal/sampling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrial_ComposesFAIRFormula(t *testing.T) {
	p, err := newPlan(Input{
		TEF:           tri(0, 4, 8),
		Vulnerability: ptr(0.25),
		Primary: PrimaryEstimates{
			ProductivityLoss: tri(0, 2000, 4000),
			ResponseCosts:    tri(0, 500, 1000),
			ReplacementCost:  tri(0, 900, 2000),
			Fines:            tri(0, 5000, 9000),
		},
		Secondary: &SecondaryEstimates{
			Enabled:                 true,
			ResponseCost:            tri(0, 100, 200),
			ExternalStakeholderLoss: tri(0, 400, 800),
		},
	})
	require.NoError(t, err)

	out, err := p.trial(modeSampler{})
	require.NoError(t, err)

	assert.Equal(t, 4.0, out.TEF)
	assert.Equal(t, 1.0, out.LEF)
	// Replacement cost of 900 is immaterial; fines of 5000 count.
	assert.Equal(t, 7500.0, out.PrimaryLoss)
	assert.Equal(t, 500.0, out.SecondaryLoss)
	assert.Equal(t, 8000.0, out.ALE)
}

func TestTrial_InsuranceDeductionFloor(t *testing.T) {
	in := Input{
		TEF:           tri(0, 1, 2),
		Vulnerability: ptr(0.5),
		Primary:       PrimaryEstimates{ProductivityLoss: tri(0, 1000, 2000)},
		Insurance:     &Insurance{Enabled: true, Amount: 1000},
	}
	p, err := newPlan(in)
	require.NoError(t, err)

	out, err := p.trial(modeSampler{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.ALE, "500 pre-insurance minus 1000 floors at zero")
}

func TestTrial_DefaultVulnerability(t *testing.T) {
	p, err := newPlan(Input{
		TEF:     tri(0, 4, 8),
		Primary: PrimaryEstimates{ProductivityLoss: tri(0, 3000, 6000)},
	})
	require.NoError(t, err)

	out, err := p.trial(modeSampler{})
	require.NoError(t, err)

	assert.Equal(t, 2.0, out.LEF, "an omitted vulnerability is 0.5")
	assert.Equal(t, 6000.0, out.ALE)
}

// tefSampler returns a fixed TEF and the most likely value of every other estimate.
type tefSampler struct {
	tef   sampling.Triple
	value float64
}

func (s tefSampler) Sample(t sampling.Triple, _ float64) (float64, error) {
	if t == s.tef {
		return s.value, nil
	}
	return t.MostLikely, nil
}

func TestTrial_NegativeTEFDrawWithSecondaryOverride(t *testing.T) {
	in := Input{
		DistributionType: "NORMAL",
		TEF:              tri(0, 1, 10),
		Vulnerability:    ptr(0.5),
		Primary:          PrimaryEstimates{ProductivityLoss: tri(0, 2000, 4000)},
		Secondary: &SecondaryEstimates{
			Enabled:          true,
			Frequency:        0.5,
			ReputationDamage: tri(0, 8000, 9000),
		},
	}
	p, err := newPlan(in)
	require.NoError(t, err)

	out, err := p.trial(tefSampler{tef: in.TEF, value: -1})
	require.NoError(t, err)

	assert.Equal(t, -0.5, out.LEF)
	assert.Equal(t, 0.0, out.SecondaryLoss)
	assert.Equal(t, 0.0, out.ALE)
}
