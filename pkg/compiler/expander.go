package compiler

import (
	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// DefaultMaxExpansionDepth bounds component-inlining recursion when no
// override is configured.
const DefaultMaxExpansionDepth = 1024

// expander inlines composite components into their use sites,
// iteratively, until no assignment references a component name.
type expander struct {
	comps    componentMap
	maxDepth int
	diags    []diag.Diagnostic
}

// expand runs the Expander pass over root in place.
func expand(root *ast.Node, comps componentMap, maxDepth int) []diag.Diagnostic {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxExpansionDepth
	}

	e := &expander{comps: comps, maxDepth: maxDepth}
	e.visit(root, 0)

	return e.diags
}

// visit walks n, inlining matching Assignments. depth counts only
// actual component-substitution events, not generic tree descent, so
// that ordinary nesting never trips the recursion cap.
func (e *expander) visit(n *ast.Node, depth int) {
	if n.Kind == ast.KindAssignment {
		def, isComponent := e.comps[n.ActorType]
		if !isComponent {
			return
		}

		if depth >= e.maxDepth {
			e.diags = append(e.diags, diag.Diagnostic{
				Severity: diag.SeverityError,
				Reason:   diag.ReasonRecursiveComponent,
				Message:  "component expansion exceeded max depth for " + n.ActorType,
				Line:     n.Pos.Line,
				Col:      n.Pos.Col,
			})

			return
		}

		newBlock := e.inline(n, def)
		parent := n.Parent
		parent.ReplaceChild(n, newBlock)
		e.visit(newBlock, depth+1)

		return
	}

	for _, c := range snapshot(n.Children) {
		e.visit(c, depth)
	}
}

// inline clones the component body and the assignment's argument
// bindings, producing the namespaced Block that replaces the assignment.
func (e *expander) inline(assignment, def *ast.Node) *ast.Node {
	clonedAssignment := assignment.Clone()

	body := def.Children[0]
	newBlock := body.Clone()
	newBlock.Namespace = clonedAssignment.Ident
	newBlock.Args = make(map[string]*ast.Node, len(clonedAssignment.Children))

	for _, namedArg := range clonedAssignment.Children {
		nameNode, valueNode := namedArg.Children[0], namedArg.Children[1]
		newBlock.Args[nameNode.Ident] = valueNode
	}

	return newBlock
}

// snapshot copies a child slice so a pass can mutate the live list
// while iterating the frozen order it started with.
func snapshot(children []*ast.Node) []*ast.Node {
	out := make([]*ast.Node, len(children))
	copy(out, children)

	return out
}
