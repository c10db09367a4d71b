package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/observability"
	"github.com/flowc-lang/flowc/pkg/actorstore"
	"github.com/flowc-lang/flowc/pkg/compiler"
	"github.com/flowc-lang/flowc/pkg/diag"
)

const jsonIndent = "    "

func buildCmd() *cobra.Command {
	var (
		scriptName string
		dumpStages bool
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "build <script.fbp>",
		Short: "Compile a dataflow script into an actor/connection manifest",
		Long: `build runs the full seven-pass compiler pipeline over a dataflow
script and emits the resulting manifest as indented JSON.

Examples:
  flowc build app.fbp --name myapp
  flowc build app.fbp --name myapp -o manifest.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runBuild(args[0], scriptName, outputPath, dumpStages)
		},
	}

	cmd.Flags().StringVar(&scriptName, "name", "script", "script name used to qualify manifest keys")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&dumpStages, "dump-stages", false, "print a brace-tree dump of the parsed AST to stderr before compiling (no per-pass dumps)")

	return cmd
}

func runBuild(path, scriptName, outputPath string, dumpStages bool) error {
	setupLogging(observability.AppModeBuild)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, parseDiags, err := readScript(path)
	if err != nil {
		return err
	}

	if dumpStages {
		fmt.Fprintf(os.Stderr, "--- parsed ---\n%s\n", root.String())
	}

	store := actorstore.New()

	opts := compiler.Options{
		MaxExpansionDepth:  cfg.MaxExpansionDepth,
		Separator:          cfg.Separator,
		LiteralConstPrefix: cfg.LiteralConstPrefix,
	}

	manifest, compileDiags, err := compiler.Compile(root, scriptName, store, store, opts)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	allDiags := append(append([]diag.Diagnostic(nil), parseDiags...), compileDiags...)
	if diag.HasErrors(parseDiags) {
		manifest.Valid = false
	}

	printDiagnostics(allDiags)

	out, err := json.MarshalIndent(manifest, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	return writeOutput(outputPath, out)
}

func writeOutput(path string, data []byte) error {
	data = append(data, '\n')

	if path == "" {
		_, err := os.Stdout.Write(data)
		if err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}

		return nil
	}

	err := os.WriteFile(path, data, 0o644) //nolint:gosec // manifest is not sensitive.
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}
