// Package mcpserver exposes the generation pipeline as Model Context Protocol
// tools so an agent can turn lecture notes into study material.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/generation"
)

// Tool names.
const (
	ToolGenerateSummary    = "generate_summary"
	ToolGenerateQuiz       = "generate_quiz"
	ToolGenerateFlashcards = "generate_flashcards"
)

// Requester produces artifacts from notes. *generation.Pipeline satisfies it.
type Requester interface {
	RequestSummary(ctx context.Context, notes string) generation.Result[string]
	RequestQuiz(ctx context.Context, notes string) generation.Result[[]domain.QuizQuestion]
	RequestFlashcards(ctx context.Context, notes string) generation.Result[[]domain.Flashcard]
}

// Server wraps the MCP SDK server with the generation tools registered.
type Server struct {
	MCPServer *sdkmcp.Server

	requester Requester
	log       *slog.Logger
}

// NewServer creates an MCP server named "lecture-companion" that serves
// requests through requester.
func NewServer(requester Requester, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		MCPServer: sdkmcp.NewServer(
			&sdkmcp.Implementation{Name: "lecture-companion", Version: version},
			nil,
		),
		requester: requester,
		log:       logger.With("component", "mcp"),
	}
	s.registerTools()
	return s
}

// Run serves the tools over stdin/stdout until ctx is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.log.InfoContext(ctx, "MCP server listening on stdio")
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        ToolGenerateSummary,
		Description: "Summarize lecture notes into a main topic, key points, important definitions and a conclusion.",
	}, s.handleGenerateSummary)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        ToolGenerateQuiz,
		Description: "Generate 3 multiple-choice questions (4 options each, zero-based correct index) from lecture notes.",
	}, s.handleGenerateQuiz)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        ToolGenerateFlashcards,
		Description: "Generate 5 term/definition flashcards from lecture notes.",
	}, s.handleGenerateFlashcards)
}

// --- Tool input/output types ---

type notesInput struct {
	Notes string `json:"notes" jsonschema:"the lecture notes to study"`
}

type summaryOutput struct {
	RequestID string `json:"request_id"`
	Summary   string `json:"summary"`
}

type quizOutput struct {
	RequestID string                `json:"request_id"`
	Questions []domain.QuizQuestion `json:"questions"`
}

type flashcardsOutput struct {
	RequestID  string             `json:"request_id"`
	Flashcards []domain.Flashcard `json:"flashcards"`
}

// --- Tool handlers ---

func (s *Server) handleGenerateSummary(ctx context.Context, _ *sdkmcp.CallToolRequest, input notesInput) (*sdkmcp.CallToolResult, summaryOutput, error) {
	result := s.requester.RequestSummary(ctx, input.Notes)
	if !result.OK() {
		return nil, summaryOutput{}, s.toolError(ctx, ToolGenerateSummary, result.RequestID, result.Diagnostic())
	}
	return nil, summaryOutput{RequestID: result.RequestID, Summary: result.Value}, nil
}

func (s *Server) handleGenerateQuiz(ctx context.Context, _ *sdkmcp.CallToolRequest, input notesInput) (*sdkmcp.CallToolResult, quizOutput, error) {
	result := s.requester.RequestQuiz(ctx, input.Notes)
	if !result.OK() {
		return nil, quizOutput{}, s.toolError(ctx, ToolGenerateQuiz, result.RequestID, result.Diagnostic())
	}
	return nil, quizOutput{RequestID: result.RequestID, Questions: result.Value}, nil
}

func (s *Server) handleGenerateFlashcards(ctx context.Context, _ *sdkmcp.CallToolRequest, input notesInput) (*sdkmcp.CallToolResult, flashcardsOutput, error) {
	result := s.requester.RequestFlashcards(ctx, input.Notes)
	if !result.OK() {
		return nil, flashcardsOutput{}, s.toolError(ctx, ToolGenerateFlashcards, result.RequestID, result.Diagnostic())
	}
	return nil, flashcardsOutput{RequestID: result.RequestID, Flashcards: result.Value}, nil
}

// toolError reports a failed generation to the client as a tool error. The
// diagnostic is already redacted.
func (s *Server) toolError(ctx context.Context, tool, requestID, diagnostic string) error {
	s.log.WarnContext(ctx, "tool call failed", "tool", tool, "request_id", requestID, "error", diagnostic)
	return fmt.Errorf("%s: %s", tool, diagnostic)
}
