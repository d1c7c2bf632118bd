// Package mcp exposes the resolver as an MCP tool for AI assistants.
package mcp

import (
	"context"

	"codechat/internal/usecase"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const toolAsk = "ask_programming_question"

// Server wraps the resolver and exposes it over MCP.
type Server struct {
	server   *gomcp.Server
	resolver *usecase.Resolver
}

func NewServer(resolver *usecase.Resolver, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{resolver: resolver}
	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "codechat", Version: version},
		nil,
	)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        toolAsk,
		Description: "Answer a beginner programming question about Python, Java or C (syntax, features, uses, comparisons, common concepts).",
	}, s.handleAsk)

	return s
}

// Run serves on stdio until the client disconnects or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

type askInput struct {
	Question string `json:"question" jsonschema:"the question in plain English, e.g. python for loop"`
}

type askOutput struct {
	Answer     string  `json:"answer"`
	Source     string  `json:"source"`
	TopicID    string  `json:"topic_id,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

func (s *Server) handleAsk(_ context.Context, _ *gomcp.CallToolRequest, input askInput) (*gomcp.CallToolResult, askOutput, error) {
	res := s.resolver.Explain(input.Question)
	return nil, askOutput{
		Answer:     res.Answer,
		Source:     string(res.Source),
		TopicID:    res.TopicID,
		Confidence: res.Confidence,
	}, nil
}
