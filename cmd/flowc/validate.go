package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flowc-lang/flowc/internal/observability"
	"github.com/flowc-lang/flowc/pkg/actorstore"
	"github.com/flowc-lang/flowc/pkg/compiler"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// exitCodeValidationFailure is the exit code for a validate run that
// surfaces at least one error-severity diagnostic.
const exitCodeValidationFailure = 1

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <script.fbp>",
		Short: "Run the compiler pipeline and print only its diagnostics",
		Long: `validate compiles a dataflow script and prints the diagnostics list
without emitting a manifest. It exits non-zero if any diagnostic has
error severity.

Example:
  flowc validate app.fbp
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}

	return cmd
}

func runValidate(path string) error {
	setupLogging(observability.AppModeValidate)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, parseDiags, err := readScript(path)
	if err != nil {
		return err
	}

	store := actorstore.New()
	opts := compiler.Options{
		MaxExpansionDepth:  cfg.MaxExpansionDepth,
		Separator:          cfg.Separator,
		LiteralConstPrefix: cfg.LiteralConstPrefix,
	}

	_, compileDiags, err := compiler.Compile(root, "validate", store, store, opts)
	if err != nil {
		return err
	}

	allDiags := append(append([]diag.Diagnostic(nil), parseDiags...), compileDiags...)
	printDiagnostics(allDiags)

	if diag.HasErrors(allDiags) {
		os.Exit(exitCodeValidationFailure)
	}

	return nil
}
