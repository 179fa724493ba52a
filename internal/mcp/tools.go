package mcp

import (
	"fair-mcs/internal/simulation"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// RunArgs are the arguments of run_fair_simulation.
type RunArgs struct {
	Scenario      simulation.Input `json:"scenario" jsonschema:"the FAIR scenario: TEF, vulnerability and loss component estimates"`
	Seed          uint64           `json:"seed,omitempty" jsonschema:"optional seed for a reproducible run; 0 uses the configured seed or a fresh one"`
	IncludeCharts bool             `json:"include_charts,omitempty" jsonschema:"add Mermaid histogram and exceedance charts to the markdown report"`
}

// DescribeArgs are the (empty) arguments of describe_fair_model.
type DescribeArgs struct{}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "run_fair_simulation",
		Description: "Run a FAIR Monte-Carlo simulation and return the Annualized Loss Expectancy (ALE) distribution for a cyber-risk scenario.\n\n" +
			"Every estimate is a three-point triple {min, mostLikely, max}; min <= mostLikely <= max is enforced.\n" +
			"Replacement cost and fines only count once a trial draws more than 1000.\n" +
			"Guidance: Call 'describe_fair_model' first if you are unsure how components combine.\n\n" +
			"STRICT GUARDRAIL: YOU MUST NEVER INVENT LOSS FIGURES. Only report percentiles returned by this tool, and relay any warnings (e.g. an unrecognised distribution falling back to PERT) to the user.",
	}, s.handleRunSimulation)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "describe_fair_model",
		Description: "Describe the FAIR loss model used by 'run_fair_simulation': formula, supported distributions, defaults and thresholds.",
	}, s.handleDescribeModel)
}
