package visuals

import (
	"fmt"
	"math"
	"strings"

	"fair-mcs/internal/simulation"
	"fair-mcs/internal/stats"
)

// GenerateALEHistogram creates a Mermaid xychart-beta bar chart of the simulated ALE distribution.
func GenerateALEHistogram(h *simulation.Histogram, currency string) string {
	if h == nil || len(h.Counts) == 0 || h.Total() == 0 {
		return ""
	}

	var labels []string
	var values []string
	maxVal := 0

	for i, count := range h.Counts {
		labels = append(labels, fmt.Sprintf("\"%s\"", shortAmount(h.Edges[i])))
		values = append(values, fmt.Sprintf("%d", count))
		if count > maxVal {
			maxVal = count
		}
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString(fmt.Sprintf("    title \"Annualized Loss Expectancy (%s)\"\n", currency))
	sb.WriteString(fmt.Sprintf("    x-axis [%s]\n", strings.Join(labels, ", ")))
	sb.WriteString(fmt.Sprintf("    y-axis \"Trials\" 0 --> %d\n", maxVal+int(math.Max(1, float64(maxVal)*0.1))))
	sb.WriteString(fmt.Sprintf("    bar [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// GenerateExceedanceCurve creates a Mermaid line chart of P(ALE > loss).
func GenerateExceedanceCurve(points []stats.ExceedancePoint, currency string) string {
	if len(points) == 0 {
		return ""
	}

	var labels []string
	var values []string

	for _, p := range points {
		labels = append(labels, fmt.Sprintf("\"%s\"", shortAmount(p.Loss)))
		values = append(values, fmt.Sprintf("%.1f", p.Probability*100))
	}

	var sb strings.Builder
	sb.WriteString("```mermaid\n")
	sb.WriteString("xychart-beta\n")
	sb.WriteString("    title \"Loss Exceedance Curve\"\n")
	sb.WriteString(fmt.Sprintf("    x-axis \"Annual Loss (%s)\" [%s]\n", currency, strings.Join(labels, ", ")))
	sb.WriteString("    y-axis \"Probability of Exceeding (%)\" 0 --> 100\n")
	sb.WriteString(fmt.Sprintf("    line [%s]\n", strings.Join(values, ", ")))
	sb.WriteString("```")
	return sb.String()
}

// shortAmount abbreviates a money amount for axis labels.
func shortAmount(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
