// Package compiler implements the seven-pass tree-rewriting pipeline
// that turns a dataflow script's AST into a flat actor/connection
// manifest: Finder, ComponentCollector, Expander, ImplicitPortRewrite,
// Flatten, PortMapResolver, and ManifestEmitter, run in that fixed
// order over one mutable tree.
package compiler

import (
	"errors"
	"log/slog"

	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// ErrNilRoot is returned when Compile or Export is called without a root node.
var ErrNilRoot = errors.New("compiler: root must not be nil")

// ErrNilCollaborator is returned when Compile is called without its
// required injected ActorStore/GlobalStore collaborators.
var ErrNilCollaborator = errors.New("compiler: ActorStore and GlobalStore must not be nil")

// DefaultSeparator joins namespace segments and qualified names when
// Options.Separator is left zero.
const DefaultSeparator = ":"

// DefaultLiteralConstPrefix names the synthesized std.Constant
// assignments ImplicitPortRewrite introduces when
// Options.LiteralConstPrefix is left zero.
const DefaultLiteralConstPrefix = "_literal_const_"

// Options configures a single Compile invocation.
type Options struct {
	// MaxExpansionDepth bounds Expander recursion. Zero uses
	// DefaultMaxExpansionDepth.
	MaxExpansionDepth int

	// Separator joins namespace segments into a qualified name. Zero
	// uses DefaultSeparator (":"). Overridable only for embedding/
	// tests; the canonical value is ":".
	Separator string

	// LiteralConstPrefix names the synthesized std.Constant
	// assignments ImplicitPortRewrite introduces. Zero uses
	// DefaultLiteralConstPrefix.
	LiteralConstPrefix string
}

// Compile runs the full pipeline over root, producing a manifest named
// scriptName. err is reserved for programmer-error conditions (nil
// root or collaborators); recoverable compile-time problems are
// reported through the returned diagnostics list and manifest.Valid.
func Compile(root *ast.Node, scriptName string, store ActorStore, global GlobalStore, opts Options) (*Manifest, []diag.Diagnostic, error) {
	if root == nil {
		return nil, nil, ErrNilRoot
	}

	if store == nil || global == nil {
		return nil, nil, ErrNilCollaborator
	}

	separator := opts.Separator
	if separator == "" {
		separator = DefaultSeparator
	}

	literalConstPrefix := opts.LiteralConstPrefix
	if literalConstPrefix == "" {
		literalConstPrefix = DefaultLiteralConstPrefix
	}

	var diags []diag.Diagnostic

	slog.Debug("compiler: collecting components")

	comps, collectDiags := collectComponents(root)
	diags = append(diags, collectDiags...)

	slog.Debug("compiler: expanding components", "count", len(comps))

	diags = append(diags, expand(root, comps, opts.MaxExpansionDepth)...)

	slog.Debug("compiler: rewriting implicit ports")

	rewriteImplicitPorts(root, literalConstPrefix)

	slog.Debug("compiler: flattening namespaces")

	diags = append(diags, flatten(root, separator)...)

	slog.Debug("compiler: resolving internal port maps")

	resolvePortMaps(root)

	slog.Debug("compiler: emitting manifest")

	manifest, emitDiags := emitManifest(root, scriptName, separator, store, global)
	diags = append(diags, emitDiags...)

	manifest.Valid = !diag.HasErrors(diags)

	slog.Debug("compiler: done", "actors", len(manifest.Actors), "diagnostics", len(diags))

	return manifest, diags, nil
}

// Export returns the top-level component definitions without inlining
// them, for the install flow (spec.md §6's secondary entry point,
// supplemented per SPEC_FULL.md §8 from calvin's csinstaller.py: it
// re-runs collection only and skips expansion). The input tree is
// cloned first so the caller's tree is left untouched.
func Export(root *ast.Node) (map[string]*ast.Node, []diag.Diagnostic, error) {
	if root == nil {
		return nil, nil, ErrNilRoot
	}

	clone := root.Clone()

	comps, diags := collectComponents(clone)

	return comps, diags, nil
}
