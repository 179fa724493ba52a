package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fair-mcs/internal/simulation"
	"fair-mcs/internal/stats"
	"fair-mcs/internal/visuals"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Envelope wraps a simulation result with the metadata of the run that produced it.
type Envelope struct {
	RunID       uuid.UUID         `json:"runId"`
	GeneratedAt time.Time         `json:"generatedAt"`
	Currency    string            `json:"currency"`
	Scenario    simulation.Input  `json:"scenario"`
	Result      simulation.Result `json:"result"`
	Markdown    string            `json:"markdown,omitempty"`
}

// Options controls report rendering.
type Options struct {
	Currency string
	Charts   bool
}

// New stamps a result with a fresh run id and renders its Markdown summary.
func New(in simulation.Input, res simulation.Result, opts Options) Envelope {
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	env := Envelope{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Currency:    opts.Currency,
		Scenario:    in,
		Result:      res,
	}
	env.Markdown = Markdown(env, opts.Charts)
	return env
}

// Markdown renders the envelope as a human-readable report.
func Markdown(env Envelope, charts bool) string {
	res := env.Result
	cur := env.Currency

	var sb strings.Builder
	sb.WriteString("# FAIR Risk Analysis\n\n")
	sb.WriteString(fmt.Sprintf("- Run: `%s`\n", env.RunID))
	sb.WriteString(fmt.Sprintf("- Generated: %s\n", env.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("- Trials: %d (%s, seed %d)\n\n", res.Iterations, res.Distribution, res.Seed))

	sb.WriteString("## Annualized Loss Expectancy\n\n")
	writePercentiles(&sb, cur, res.ALE, res.PrimaryLoss)

	sb.WriteString("\n| Statistic | ALE |\n|---|---:|\n")
	sb.WriteString(fmt.Sprintf("| Mean | %s |\n", Money(res.MeanALE, cur)))
	sb.WriteString(fmt.Sprintf("| Std. deviation | %s |\n", Money(res.StdDevALE, cur)))
	sb.WriteString(fmt.Sprintf("| Minimum | %s |\n", Money(res.MinALE, cur)))
	sb.WriteString(fmt.Sprintf("| Maximum | %s |\n", Money(res.MaxALE, cur)))

	if len(res.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, w := range res.Warnings {
			sb.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	if charts {
		if c := visuals.GenerateALEHistogram(res.Histogram, cur); c != "" {
			sb.WriteString("\n## Distribution\n\n")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
		if c := visuals.GenerateExceedanceCurve(res.Exceedance, cur); c != "" {
			sb.WriteString("\n## Loss Exceedance\n\n")
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writePercentiles(sb *strings.Builder, cur string, ale, primary stats.Percentiles) {
	sb.WriteString("| Percentile | ALE | Primary loss per event |\n|---|---:|---:|\n")
	rows := []struct {
		label   string
		ale     float64
		primary float64
	}{
		{"P10", ale.P10, primary.P10},
		{"P50", ale.P50, primary.P50},
		{"P90", ale.P90, primary.P90},
		{"P95", ale.P95, primary.P95},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", r.label, Money(r.ale, cur), Money(r.primary, cur)))
	}
}

// Save writes the Markdown report to dir and returns its path.
func Save(env Envelope, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("fair-report-%s.md", env.RunID))
	if err := os.WriteFile(path, []byte(env.Markdown), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Money rounds v to cents and groups the integer part in thousands.
func Money(v float64, currency string) string {
	s := decimal.NewFromFloat(v).StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	out := sign + grouped.String() + "." + frac
	if currency == "" {
		return out
	}
	return currency + " " + out
}
