package compiler

import (
	"strings"

	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// flattener collapses the block hierarchy into the root block,
// qualifying every assignment/port identifier with its accumulated
// namespace prefix and resolving argument and constant references.
type flattener struct {
	separator string
	stack     []string
	constants map[string]*ast.Node
	diags     []diag.Diagnostic
}

// flatten runs the Flatten pass over root in place, joining namespace
// segments with separator. root itself is never spliced or detached,
// even though it is a Block like any other.
func flatten(root *ast.Node, separator string) []diag.Diagnostic {
	f := &flattener{separator: separator, constants: make(map[string]*ast.Node)}
	f.visitBlock(root, true)

	return f.diags
}

func (f *flattener) join(extra string) string {
	parts := f.stack
	if extra != "" {
		parts = append(append([]string(nil), f.stack...), extra)
	}

	return strings.Join(parts, f.separator)
}

func (f *flattener) visit(n *ast.Node) {
	switch n.Kind {
	case ast.KindConstant:
		f.visitConstant(n)
	case ast.KindBlock:
		f.visitBlock(n, false)
	case ast.KindAssignment:
		f.visitAssignment(n)
	case ast.KindNamedArg:
		f.visitNamedArg(n)
	case ast.KindPort, ast.KindInPort, ast.KindOutPort, ast.KindInternalInPort, ast.KindInternalOutPort:
		f.visitPort(n)
	default:
		for _, c := range snapshot(n.Children) {
			f.visit(c)
		}
	}
}

// visitConstant records the constant's value and does not descend; the
// Constant node is then detached, since after Flatten only Assignment
// and Link nodes may remain (spec.md §3's post-Flatten invariant) and
// the original Python's generic dispatch, which leaves Constant nodes
// in place, does not hold that invariant. See DESIGN.md.
func (f *flattener) visitConstant(n *ast.Node) {
	idNode, valueNode := n.Children[0], n.Children[1]
	f.constants[idNode.Ident] = valueNode
	n.Detach()
}

// visitBlock resolves Id-valued entries in block.Args against the
// parent block's Args, pushes the namespace if any, recurses, pops,
// then splices the block's children into its own parent. The root
// block is recursed into but never spliced.
func (f *flattener) visitBlock(n *ast.Node, isRoot bool) {
	for name, v := range n.Args {
		if v.Kind != ast.KindID {
			continue
		}

		resolved := f.resolveInParentArgs(n, v.Ident)
		if resolved == nil {
			f.diags = append(f.diags, diag.Diagnostic{
				Severity: diag.SeverityWarning,
				Reason:   diag.ReasonUnresolvedSymbol,
				Message:  "unresolved argument reference: " + v.Ident,
				Line:     v.Pos.Line,
				Col:      v.Pos.Col,
			})

			continue
		}

		n.Args[name] = resolved
	}

	pushed := n.Namespace != ""
	if pushed {
		f.stack = append(f.stack, n.Namespace)
	}

	for _, c := range snapshot(n.Children) {
		f.visit(c)
	}

	if pushed {
		f.stack = f.stack[:len(f.stack)-1]
	}

	if !isRoot {
		n.SpliceSelf()
	}
}

// resolveInParentArgs looks up ident in n.Parent.Args, the enclosing
// block's argument bindings.
func (f *flattener) resolveInParentArgs(n *ast.Node, ident string) *ast.Node {
	if n.Parent == nil || n.Parent.Args == nil {
		return nil
	}

	return n.Parent.Args[ident]
}

// visitAssignment pushes the assignment's own ident, rewrites it to
// the joined qualified name, pops immediately, then recurses into the
// NamedArg children so any port references inside them resolve under
// the correct prefix.
func (f *flattener) visitAssignment(n *ast.Node) {
	f.stack = append(f.stack, n.Ident)
	n.Ident = strings.Join(f.stack, f.separator)
	f.stack = f.stack[:len(f.stack)-1]

	for _, c := range snapshot(n.Children) {
		f.visit(c)
	}
}

// visitNamedArg resolves an Id-valued NamedArg against the enclosing
// block's Args, then the constants map, replacing it with a clone of
// whichever is found (to avoid aliasing a shared value node).
func (f *flattener) visitNamedArg(n *ast.Node) {
	valueNode := n.Children[1]
	if valueNode.Kind != ast.KindID {
		return
	}

	block := n.Parent.Parent

	var resolved *ast.Node
	if block != nil {
		resolved = block.Args[valueNode.Ident]
	}

	if resolved == nil {
		resolved = f.constants[valueNode.Ident]
	}

	if resolved == nil {
		f.diags = append(f.diags, diag.Diagnostic{
			Severity: diag.SeverityWarning,
			Reason:   diag.ReasonUnresolvedSymbol,
			Message:  "unresolved symbol: " + valueNode.Ident,
			Line:     valueNode.Pos.Line,
			Col:      valueNode.Pos.Col,
		})

		return
	}

	n.ReplaceChild(valueNode, resolved.Clone())
}

// visitPort qualifies actor with the current namespace stack.
func (f *flattener) visitPort(n *ast.Node) {
	if n.Actor != "" {
		n.Actor = f.join(n.Actor)
	} else {
		n.Actor = f.join("")
	}
}
