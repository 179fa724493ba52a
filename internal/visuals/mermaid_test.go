package visuals

import (
	"strings"
	"testing"

	"fair-mcs/internal/simulation"
	"fair-mcs/internal/stats"

	"github.com/stretchr/testify/assert"
)

func TestGenerateALEHistogram(t *testing.T) {
	h := &simulation.Histogram{
		Edges:  []float64{0, 2500, 5000, 7500},
		Counts: []int{10, 40, 50},
	}

	chart := GenerateALEHistogram(h, "EUR")

	assert.True(t, strings.HasPrefix(chart, "```mermaid\nxychart-beta\n"))
	assert.Contains(t, chart, `title "Annualized Loss Expectancy (EUR)"`)
	assert.Contains(t, chart, `x-axis ["0", "2.5k", "5.0k"]`)
	assert.Contains(t, chart, `y-axis "Trials" 0 --> 55`)
	assert.Contains(t, chart, "bar [10, 40, 50]")
	assert.True(t, strings.HasSuffix(chart, "```"))
}

func TestGenerateALEHistogram_Empty(t *testing.T) {
	assert.Empty(t, GenerateALEHistogram(nil, "USD"))
	assert.Empty(t, GenerateALEHistogram(&simulation.Histogram{Edges: []float64{0, 1}, Counts: []int{0}}, "USD"))
}

func TestGenerateExceedanceCurve(t *testing.T) {
	chart := GenerateExceedanceCurve([]stats.ExceedancePoint{
		{Loss: 0, Probability: 0.98},
		{Loss: 1_500_000, Probability: 0.25},
		{Loss: 3_000_000, Probability: 0},
	}, "USD")

	assert.Contains(t, chart, `x-axis "Annual Loss (USD)" ["0", "1.5M", "3.0M"]`)
	assert.Contains(t, chart, "line [98.0, 25.0, 0.0]")
	assert.Empty(t, GenerateExceedanceCurve(nil, "USD"))
}

func TestShortAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "950"},
		{12_500, "12.5k"},
		{2_340_000, "2.3M"},
		{4_100_000_000, "4.1B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, shortAmount(tt.in))
	}
}
