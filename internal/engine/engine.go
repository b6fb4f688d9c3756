package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"council/internal/cliengine"
	"council/internal/council"
	"council/internal/logging"
	"council/internal/prompt"
	"council/internal/rpc"
)

const (
	ServerName      = "mcp-council"
	ServerVersion   = "0.1.0"
	ProtocolVersion = "2024-11-05"
)

const defaultEngine = "claude"

// Engine owns the two council tools and routes tools/call invocations to
// them. All state lives on disk under the .council workspace; the engine
// itself only carries its collaborator and logger.
type Engine struct {
	runner cliengine.Runner
	logger *slog.Logger
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func WithRunner(runner cliengine.Runner) Option {
	return func(e *Engine) {
		if runner != nil {
			e.runner = runner
		}
	}
}

func New(opts ...Option) *Engine {
	engine := &Engine{logger: logging.Nop()}
	for _, opt := range opts {
		opt(engine)
	}
	if engine.runner == nil {
		engine.runner = cliengine.New(cliengine.Config{}, engine.logger.With("component", "cliengine"))
	}
	return engine
}

func (e *Engine) Initialize(ctx context.Context, _ json.RawMessage) (any, *rpc.Error) {
	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{"tools": map[string]any{}},
		"serverInfo": map[string]any{
			"name":    ServerName,
			"version": ServerVersion,
		},
	}, nil
}

func (e *Engine) ToolsList(ctx context.Context, _ json.RawMessage) (any, *rpc.Error) {
	return map[string]any{"tools": toolDescriptors()}, nil
}

// ToolsCall routes a tool invocation. Unknown tools get the method-not-found
// code; every failure inside a tool handler maps to the single internal
// error code with a descriptive message.
func (e *Engine) ToolsCall(ctx context.Context, params json.RawMessage) (any, *rpc.Error) {
	if len(params) == 0 {
		return nil, rpc.Errorf(0, "Missing params")
	}
	var call struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, rpc.Errorf(0, "Invalid params: %v", err)
	}
	if call.Name == "" {
		return nil, rpc.Errorf(0, "Missing tool name")
	}
	arguments := call.Arguments
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}

	callID := uuid.NewString()
	logger := e.logger.With("call_id", callID, "tool", call.Name)
	logger.Info("tools.call")

	switch call.Name {
	case "council.peer_review":
		result, err := e.peerReview(ctx, arguments, logger)
		if err != nil {
			return nil, rpc.Errorf(0, "Peer review failed: %v", err)
		}
		return toolResult(result)
	case "council.finalize":
		result, err := e.finalize(ctx, arguments, logger)
		if err != nil {
			return nil, rpc.Errorf(0, "Finalize failed: %v", err)
		}
		return toolResult(result)
	default:
		logger.Warn("tools.unknown")
		return nil, rpc.Errorf(rpc.CodeMethodNotFound, "Unknown tool: %s", call.Name)
	}
}

// toolResult wraps a tool's payload the way MCP clients expect: a single
// text content block whose text is the JSON-encoded result.
func toolResult(result any) (any, *rpc.Error) {
	text, err := json.Marshal(result)
	if err != nil {
		return nil, rpc.Errorf(0, "Failed to encode tool result: %v", err)
	}
	return map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": string(text)},
		},
	}, nil
}

type peerReviewResult struct {
	Success            bool   `json:"success"`
	ReviewMarkdownFile string `json:"review_markdown_file"`
	Summary            string `json:"summary"`
	ReviewPreview      string `json:"review_preview"`
	Markdown           string `json:"markdown"`
}

func (e *Engine) peerReview(ctx context.Context, args json.RawMessage, logger *slog.Logger) (*peerReviewResult, error) {
	var req struct {
		Title     string `json:"title"`
		Engine    string `json:"engine"`
		SelfModel string `json:"self_model"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Title == "" {
		return nil, errors.New("Missing required parameter: title")
	}
	engine := strings.TrimSpace(req.Engine)
	if engine == "" {
		engine = defaultEngine
	}
	engineToken := council.EngineFileToken(engine)

	ws, err := council.OpenWorkspace(req.Title)
	if err != nil {
		return nil, err
	}
	answers, err := ws.LoadStage1()
	if err != nil {
		return nil, err
	}

	if req.SelfModel != "" {
		kept := answers[:0]
		for _, answer := range answers {
			if strings.EqualFold(answer.Model, req.SelfModel) {
				logger.Info("council.self_model_skipped", "model", answer.Model)
				continue
			}
			kept = append(kept, answer)
		}
		answers = kept
	}
	if len(answers) == 0 {
		return nil, errors.New("No Stage1 answers available after applying self_model exclusion")
	}

	// Labels are assigned after the exclusion so they stay consecutive.
	labeled := make([]prompt.LabeledAnswer, 0, len(answers))
	for i, answer := range answers {
		labeled = append(labeled, prompt.LabeledAnswer{
			Label:   prompt.Label(i),
			Content: council.ExtractContent(answer.Raw),
		})
	}

	userQuery := ws.UserQuery()
	rankingPrompt := prompt.Ranking(userQuery, labeled)
	reviewOutput, err := e.runner.Run(ctx, engine, rankingPrompt)
	if err != nil {
		return nil, fmt.Errorf("Failed to run LLM CLI for peer review: %w", err)
	}

	ws.MigrateLegacyReviews(engineToken, logger)

	markdown := council.BuildReviewMarkdown(req.Title, engine, userQuery, len(answers), reviewOutput)
	path, err := ws.WriteArtifact("peer-review-by-"+engineToken+".md", markdown)
	if err != nil {
		return nil, err
	}
	logger.Info("council.review_saved", "path", path)

	return &peerReviewResult{
		Success:            true,
		ReviewMarkdownFile: path,
		Summary:            fmt.Sprintf("Peer review completed for %d answers using %s", len(answers), engine),
		ReviewPreview:      previewText(reviewOutput, 200),
		Markdown:           markdown,
	}, nil
}

type finalizeResult struct {
	Success            bool   `json:"success"`
	FinalMarkdownFile  string `json:"final_markdown_file"`
	Summary            string `json:"summary"`
	FinalAnswerPreview string `json:"final_answer_preview"`
	Markdown           string `json:"markdown"`
}

func (e *Engine) finalize(ctx context.Context, args json.RawMessage, logger *slog.Logger) (*finalizeResult, error) {
	var req struct {
		Title  string `json:"title"`
		Engine string `json:"engine"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Title == "" {
		return nil, errors.New("Missing required parameter: title")
	}
	engine := req.Engine
	if engine == "" {
		engine = defaultEngine
	}

	ws, err := council.OpenWorkspace(req.Title)
	if err != nil {
		return nil, err
	}
	answers, err := ws.LoadStage1()
	if err != nil {
		return nil, err
	}
	reviews, err := ws.LoadStage2()
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, errors.New("No Stage2 review files found. Please run peer_review first.")
	}

	userQuery := ws.UserQuery()
	chairmanPrompt := prompt.Chairman(userQuery, answers, reviews)
	finalOutput, err := e.runner.Run(ctx, engine, chairmanPrompt)
	if err != nil {
		return nil, fmt.Errorf("Failed to run LLM CLI for finalization: %w", err)
	}

	markdown := council.BuildFinalMarkdown(req.Title, engine, userQuery, len(answers), len(reviews), finalOutput)
	path, err := ws.WriteArtifact("final-answer-by-"+engine+".md", markdown)
	if err != nil {
		return nil, err
	}
	logger.Info("council.final_saved", "path", path)

	return &finalizeResult{
		Success:           true,
		FinalMarkdownFile: path,
		Summary: fmt.Sprintf("Final answer generated using %s based on %d responses and %d reviews",
			engine, len(answers), len(reviews)),
		FinalAnswerPreview: previewText(finalOutput, 300),
		Markdown:           markdown,
	}, nil
}

// previewText truncates to at most max bytes, marking the cut with an
// ellipsis.
func previewText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}
