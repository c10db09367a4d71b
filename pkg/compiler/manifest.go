package compiler

import (
	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

// Manifest is the flat actor/connection map the core produces.
type Manifest struct {
	Name        string                `json:"name"`
	Actors      map[string]ActorEntry `json:"actors"`
	Connections map[string][]string   `json:"connections"`
	Valid       bool                  `json:"valid"`
}

// ActorEntry is one actors[...] value in the manifest.
type ActorEntry struct {
	ActorType string         `json:"actor_type"`
	Args      map[string]any `json:"args"`
	Signature string         `json:"signature"`
}

// emitManifest walks the now-flat tree and produces the manifest,
// computing each actor's signature via the actor store and qualifying
// every key with name and separator.
func emitManifest(root *ast.Node, name, separator string, store ActorStore, global GlobalStore) (*Manifest, []diag.Diagnostic) {
	m := &Manifest{
		Name:        name,
		Actors:      make(map[string]ActorEntry),
		Connections: make(map[string][]string),
	}

	var diags []diag.Diagnostic

	assignmentKind := ast.KindAssignment
	for _, a := range ast.Find(root, &assignmentKind, nil, 1) {
		entry, d := buildActorEntry(a, store, global)
		diags = append(diags, d...)
		m.Actors[name+separator+a.Ident] = entry
	}

	linkKind := ast.KindLink
	for _, l := range ast.Find(root, &linkKind, nil, 1) {
		outport, inport := l.Outport(), l.Inport()
		if outport == nil || inport == nil || !outport.Kind.IsPortKind() || !inport.Kind.IsPortKind() {
			diags = append(diags, diag.Diagnostic{
				Severity: diag.SeverityError,
				Reason:   diag.ReasonMalformedTree,
				Message:  "Link with missing or malformed endpoints",
				Line:     l.Pos.Line,
				Col:      l.Pos.Col,
			})

			continue
		}

		outKey := name + separator + outport.Actor + "." + outport.PortName
		inKey := name + separator + inport.Actor + "." + inport.PortName

		if !containsString(m.Connections[outKey], inKey) {
			m.Connections[outKey] = append(m.Connections[outKey], inKey)
		}
	}

	m.Valid = !diag.HasErrors(diags)

	return m, diags
}

func buildActorEntry(a *ast.Node, store ActorStore, global GlobalStore) (ActorEntry, []diag.Diagnostic) {
	args := make(map[string]any, len(a.Children))
	for _, namedArg := range a.Children {
		nameNode, valueNode := namedArg.Children[0], namedArg.Children[1]
		if valueNode.Kind == ast.KindValue {
			args[nameNode.Ident] = valueNode.Value
		}
	}

	found, _, class := store.Lookup(a.ActorType)
	if !found {
		return ActorEntry{ActorType: a.ActorType, Args: args, Signature: ""}, []diag.Diagnostic{{
			Severity: diag.SeverityError,
			Reason:   diag.ReasonUnknownActorType,
			Message:  "unknown actor type: " + a.ActorType,
			Line:     a.Pos.Line,
			Col:      a.Pos.Col,
		}}
	}

	sig := global.ActorSignature(SignatureDescriptor{
		IsPrimitive: true,
		ActorType:   a.ActorType,
		Inports:     class.InportNames(),
		Outports:    class.OutportNames(),
	})

	return ActorEntry{ActorType: a.ActorType, Args: args, Signature: sig}, nil
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}

	return false
}
