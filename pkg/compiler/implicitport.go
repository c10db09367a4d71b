package compiler

import (
	"strconv"

	"github.com/flowc-lang/flowc/pkg/ast"
)

// rewriteImplicitPorts desugars every `<literal> > actor.port`
// ImplicitPort into a synthesized std.Constant assignment plus a Port
// reference to it, using literalConstPrefix to name each synthesized
// assignment. ImplicitPorts are collected once, in pre-order, so
// synthesized names are deterministic with respect to source position;
// rewriting itself never introduces new ImplicitPort nodes.
func rewriteImplicitPorts(root *ast.Node, literalConstPrefix string) {
	kind := ast.KindImplicitPort
	implicitPorts := ast.Find(root, &kind, nil, -1)

	counter := 0

	for _, ip := range implicitPorts {
		counter++

		constName := literalConstPrefix + strconv.Itoa(counter)
		literal := ip.Children[0]

		assignment := ast.NewAssignment(constName, "std.Constant")
		assignment.AddChild(ast.NewNamedArg(ast.NewID("data"), literal))
		assignment.AddChild(ast.NewNamedArg(ast.NewID("n"), ast.NewValue(-1)))

		synthPort := ast.NewPort(ast.KindPort, constName, "token")

		link := ip.Parent
		link.ReplaceChild(ip, synthPort)

		block := link.Parent
		if block != nil {
			block.AddChild(assignment)
		}
	}
}
