// Package cliengine invokes a named LLM command-line tool with a prompt and
// captures its output. The rest of the system only depends on the Runner
// interface; any launch error, non-zero exit or I/O failure surfaces as a
// single opaque error.
package cliengine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"council/internal/logging"
)

type Runner interface {
	Run(ctx context.Context, engine, prompt string) (string, error)
}

// Well-known engines map to their CLI invocation; anything else is treated
// as a binary of the same name reading the prompt from stdin.
var defaultCommands = map[string][]string{
	"claude": {"claude", "-p"},
	"sonnet": {"claude", "-p", "--model", "sonnet"},
	"gemini": {"gemini", "-p"},
	"codex":  {"codex", "exec"},
	"gpt":    {"codex", "exec"},
	"grok":   {"grok"},
}

type CLIRunner struct {
	config Config
	logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *CLIRunner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &CLIRunner{config: config, logger: logger}
}

// Run launches the engine's CLI with the prompt on stdin and returns its
// stdout. No timeout is applied unless the engine's config sets one; the
// caller owns cancellation.
func (r *CLIRunner) Run(ctx context.Context, engine, prompt string) (string, error) {
	argv, timeout := r.resolve(engine)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(prompt)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("cliengine.run", "engine", engine, "command", argv[0], "prompt_bytes", len(prompt))
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%s failed: %w: %s", argv[0], err, detail)
		}
		return "", fmt.Errorf("%s failed: %w", argv[0], err)
	}
	return stdout.String(), nil
}

func (r *CLIRunner) resolve(engine string) ([]string, time.Duration) {
	if cfg, ok := r.config.Engines[engine]; ok && len(cfg.Command) > 0 {
		return cfg.Command, cfg.timeout
	}
	if argv, ok := defaultCommands[engine]; ok {
		return argv, 0
	}
	return []string{engine}, 0
}
