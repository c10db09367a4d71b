package compiler

import (
	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// componentMap maps a component's declared name to its definition node.
type componentMap map[string]*ast.Node

// collectComponents gathers top-level Component definitions into a
// name→definition map and detaches each from the tree. Components are
// only declared at top level, so the query is depth-bound to 1.
func collectComponents(root *ast.Node) (componentMap, []diag.Diagnostic) {
	kind := ast.KindComponent
	found := ast.Find(root, &kind, nil, 1)

	comps := make(componentMap, len(found))

	var diags []diag.Diagnostic

	for _, c := range found {
		if _, dup := comps[c.Name]; dup {
			diags = append(diags, diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Reason:   diag.ReasonDuplicateComponent,
				Message:  "duplicate component name: " + c.Name,
				Line:     c.Pos.Line,
				Col:      c.Pos.Col,
			})
		}

		comps[c.Name] = c
	}

	for _, c := range found {
		c.Detach()
	}

	return comps, diags
}
