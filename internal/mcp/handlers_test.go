package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"fair-mcs/internal/config"
	"fair-mcs/internal/report"
	"fair-mcs/internal/sampling"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.AppConfig {
	return &config.AppConfig{
		Simulation: config.SimulationConfig{
			Iterations:    2000,
			Workers:       2,
			BetaMethod:    sampling.BetaGamma,
			MaxRejections: sampling.DefaultMaxRejections,
		},
		Currency: "EUR",
	}
}

// connect wires a client session to a fresh server over in-memory transports.
func connect(t *testing.T, cfg *config.AppConfig) *sdk.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	ss, err := NewServer(cfg).Connect(ctx, serverTransport)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdk.NewClient(&sdk.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func resultText(t *testing.T, res *sdk.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdk.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func scenarioArgs() map[string]any {
	return map[string]any{
		"scenario": map[string]any{
			"distributionType": "PERT",
			"tef":              map[string]any{"min": 1, "mostLikely": 5, "max": 10},
			"tefConfidence":    90,
			"vulnerability":    0.5,
			"primary": map[string]any{
				"productivityLoss": map[string]any{"min": 1000, "mostLikely": 5000, "max": 20000},
			},
			"lossConfidence": 90,
		},
		"seed": 12345,
	}
}

func TestServer_ListTools(t *testing.T) {
	cs := connect(t, testConfig())

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		assert.NotNil(t, tool.InputSchema, tool.Name)
	}
	assert.ElementsMatch(t, []string{"run_fair_simulation", "describe_fair_model"}, names)
}

func TestRunFairSimulation(t *testing.T) {
	cs := connect(t, testConfig())

	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "run_fair_simulation",
		Arguments: scenarioArgs(),
	})
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &env))

	assert.Equal(t, "EUR", env.Currency)
	assert.Equal(t, 2000, env.Result.Iterations, "configured iterations apply when the scenario omits them")
	assert.Equal(t, uint64(12345), env.Result.Seed)
	assert.Greater(t, env.Result.ALE.P50, 0.0)
	assert.Contains(t, env.Markdown, "EUR")
	assert.NotContains(t, env.Markdown, "```mermaid")
}

func TestRunFairSimulation_SeedIsReproducible(t *testing.T) {
	cs := connect(t, testConfig())

	run := func() report.Envelope {
		res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
			Name:      "run_fair_simulation",
			Arguments: scenarioArgs(),
		})
		require.NoError(t, err)
		var env report.Envelope
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &env))
		return env
	}

	a, b := run(), run()
	assert.Equal(t, a.Result.ALE, b.Result.ALE)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRunFairSimulation_Charts(t *testing.T) {
	cs := connect(t, testConfig())

	args := scenarioArgs()
	args["include_charts"] = true
	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: "run_fair_simulation", Arguments: args})
	require.NoError(t, err)

	var env report.Envelope
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &env))
	assert.Contains(t, env.Markdown, "```mermaid")
}

func TestRunFairSimulation_InvalidScenarioIsToolError(t *testing.T) {
	cs := connect(t, testConfig())

	args := scenarioArgs()
	args["scenario"].(map[string]any)["tef"] = map[string]any{"min": 10, "mostLikely": 5, "max": 1}

	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{Name: "run_fair_simulation", Arguments: args})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "tef")
}

func TestDescribeFairModel(t *testing.T) {
	cs := connect(t, testConfig())

	res, err := cs.CallTool(context.Background(), &sdk.CallToolParams{
		Name:      "describe_fair_model",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	var desc ModelDescription
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &desc))
	assert.Equal(t, []string{"PERT", "NORMAL", "LOGNORMAL", "UNIFORM"}, desc.Distributions)
	assert.Equal(t, 2000, desc.DefaultIterations)
	assert.Equal(t, 1000.0, desc.MaterialityThreshold)
	assert.Equal(t, "gamma", desc.BetaMethod)
	assert.Len(t, desc.Formula, 4)
}
