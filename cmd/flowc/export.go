package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/observability"
	"github.com/flowc-lang/flowc/pkg/compiler"
)

func exportCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <script.fbp>",
		Short: "Export top-level component definitions without inlining them",
		Long: `export runs only component collection (no Expander, no Flatten) and
prints the collected component map as JSON, for the install flow.

Example:
  flowc export components.fbp
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func runExport(path, outputPath string) error {
	setupLogging(observability.AppModeExport)

	root, parseDiags, err := readScript(path)
	if err != nil {
		return err
	}

	printDiagnostics(parseDiags)

	comps, diags, err := compiler.Export(root)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	printDiagnostics(diags)

	dump := make(map[string]string, len(comps))
	for name, def := range comps {
		dump[name] = def.String()
	}

	out, err := json.MarshalIndent(dump, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("marshal components: %w", err)
	}

	return writeOutput(outputPath, out)
}
