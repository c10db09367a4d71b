package compiler

import "github.com/flowc-lang/flowc/pkg/ast"

// resolvePortMaps splices connections across former component
// boundaries. See DESIGN.md's "PortMapResolver matching direction" for
// the derivation of which marker kind pairs with which search kind.
func resolvePortMaps(root *ast.Node) {
	internalInKind := ast.KindInternalInPort
	for _, m := range ast.Find(root, &internalInKind, nil, -1) {
		inPortKind := ast.KindInPort
		for _, p := range ast.Find(root, &inPortKind, ast.ActorPort(m.Actor, m.PortName), -1) {
			p.Parent.SetInport(m.Parent.Inport().Clone())
		}
	}

	internalOutKind := ast.KindInternalOutPort
	for _, m := range ast.Find(root, &internalOutKind, nil, -1) {
		outPortKind := ast.KindOutPort
		for _, p := range ast.Find(root, &outPortKind, ast.ActorPort(m.Actor, m.PortName), -1) {
			p.Parent.SetOutport(m.Parent.Outport().Clone())
		}
	}

	linkKind := ast.KindLink
	for _, link := range ast.Find(root, &linkKind, nil, -1) {
		if link.Outport().Kind == ast.KindInternalInPort || link.Inport().Kind == ast.KindInternalOutPort {
			link.Detach()
		}
	}
}
