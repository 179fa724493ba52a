package mcp

import (
	"context"
	"encoding/json"

	"fair-mcs/internal/config"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const (
	serverName    = "fair-mcs"
	serverVersion = "0.1.0"
)

// Server holds the state for the MCP server.
type Server struct {
	cfg *config.AppConfig
	mcp *sdk.Server
}

// NewServer creates a new MCP server with the FAIR tools registered.
func NewServer(cfg *config.AppConfig) *Server {
	s := &Server{cfg: cfg}
	s.mcp = sdk.NewServer(&sdk.Implementation{Name: serverName, Version: serverVersion}, nil)
	s.registerTools()
	return s
}

// Serve runs the server over stdio until the client disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", serverVersion).Msg("Starting FAIR MCP server on stdio")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.mcp.Connect(ctx, t, nil)
}

func textResult(text string) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: text}},
	}
}

func formatResult(data any) string {
	out, _ := json.MarshalIndent(data, "", "  ")
	return string(out)
}
