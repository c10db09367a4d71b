package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/flowc-lang/flowc/internal/config"
	"github.com/flowc-lang/flowc/internal/fbp"
	"github.com/flowc-lang/flowc/internal/observability"
	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// setupLogging installs a TracingHandler-wrapped slog logger as the
// process default, gated by the --verbose/--quiet persistent flags.
func setupLogging(mode observability.AppMode) {
	level := slog.LevelInfo

	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}

	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	handler := observability.NewTracingHandler(inner, "flowc", mode)
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads flowc's runtime configuration honoring --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// readScript reads and parses the dataflow script at path, returning
// its root Block and any ParseError diagnostics the parser produced.
func readScript(path string) (*ast.Node, []diag.Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path is an explicit CLI argument.
	if err != nil {
		return nil, nil, fmt.Errorf("read script: %w", err)
	}

	root, diags := fbp.Parse(string(src))

	return root, diags, nil
}

// printDiagnostics writes one line per diagnostic to stderr.
func printDiagnostics(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s: %s (%d:%d)\n", d.Severity, d.Reason, d.Message, d.Line, d.Col)
	}
}
