// Package ast models the dataflow-script syntax tree shared by every
// compiler pass: a closed set of node kinds, an ordered child list per
// node, and a non-owning parent back-reference set on attach.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags every node with one of the closed set of node shapes the
// compiler passes understand.
type Kind int

// The closed set of node kinds.
const (
	KindBlock Kind = iota
	KindComponent
	KindAssignment
	KindNamedArg
	KindID
	KindValue
	KindConstant
	KindLink
	KindPort
	KindInPort
	KindOutPort
	KindInternalInPort
	KindInternalOutPort
	KindImplicitPort
)

var kindNames = [...]string{
	KindBlock:           "Block",
	KindComponent:       "Component",
	KindAssignment:      "Assignment",
	KindNamedArg:        "NamedArg",
	KindID:              "Id",
	KindValue:           "Value",
	KindConstant:        "Constant",
	KindLink:            "Link",
	KindPort:            "Port",
	KindInPort:          "InPort",
	KindOutPort:         "OutPort",
	KindInternalInPort:  "InternalInPort",
	KindInternalOutPort: "InternalOutPort",
	KindImplicitPort:    "ImplicitPort",
}

// String renders the kind's name, e.g. for diagnostics and tree dumps.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}

	return kindNames[k]
}

// IsPortKind reports whether k is one of the Port/InPort/OutPort/
// InternalInPort/InternalOutPort family.
func (k Kind) IsPortKind() bool {
	switch k {
	case KindPort, KindInPort, KindOutPort, KindInternalInPort, KindInternalOutPort:
		return true
	default:
		return false
	}
}

// Pos is a source position carried through for diagnostics. Either
// field may be zero when a node was synthesized by a pass rather than
// parsed from source text.
type Pos struct {
	Line int
	Col  int
}

// Node is the single struct behind every kind in the closed set; only
// the fields relevant to a node's kind are populated. This mirrors the
// one-struct-many-shapes modeling of a generic syntax tree rather than
// one Go type per kind, keeping Clone/Finder/pass dispatch uniform.
type Node struct {
	Kind Kind
	Pos  Pos

	// Block
	Namespace string
	Args      map[string]*Node

	// Component
	Name     string
	ArgNames []string

	// Assignment / Id: Ident. Assignment also uses ActorType.
	Ident     string
	ActorType string

	// Value: a primitive (number, string, bool, nil).
	Value any

	// Port family (Port, InPort, OutPort, InternalInPort, InternalOutPort).
	Actor    string
	PortName string

	Children []*Node
	Parent   *Node
}

// NewBlock constructs an empty Block node. namespace and args are set
// by Expander when inlining a component body; the root block passed
// into Compile has neither.
func NewBlock() *Node {
	return &Node{Kind: KindBlock}
}

// NewComponent constructs a Component definition node wrapping body.
func NewComponent(name string, argNames []string, body *Node) *Node {
	n := &Node{Kind: KindComponent, Name: name, ArgNames: argNames}
	n.AddChild(body)

	return n
}

// NewAssignment constructs an Assignment node with no children; the
// caller attaches its NamedArg children afterwards via AddChild.
func NewAssignment(ident, actorType string) *Node {
	return &Node{Kind: KindAssignment, Ident: ident, ActorType: actorType}
}

// NewNamedArg constructs a NamedArg node wrapping its (name, value) pair.
func NewNamedArg(nameNode, valueNode *Node) *Node {
	n := &Node{Kind: KindNamedArg}
	n.AddChild(nameNode)
	n.AddChild(valueNode)

	return n
}

// NewID constructs an identifier-reference node.
func NewID(ident string) *Node {
	return &Node{Kind: KindID, Ident: ident}
}

// NewValue constructs a literal-value node.
func NewValue(value any) *Node {
	return &Node{Kind: KindValue, Value: value}
}

// NewConstant constructs a Constant node wrapping its (Id, Value) pair.
func NewConstant(idNode, valueNode *Node) *Node {
	n := &Node{Kind: KindConstant}
	n.AddChild(idNode)
	n.AddChild(valueNode)

	return n
}

// NewLink constructs a Link node wrapping its (outport, inport) pair.
func NewLink(outport, inport *Node) *Node {
	n := &Node{Kind: KindLink}
	n.AddChild(outport)
	n.AddChild(inport)

	return n
}

// NewPort constructs a leaf port-family node of the given kind.
func NewPort(kind Kind, actor, portName string) *Node {
	return &Node{Kind: kind, Actor: actor, PortName: portName}
}

// NewImplicitPort constructs an ImplicitPort wrapping its literal Value child.
func NewImplicitPort(literal *Node) *Node {
	n := &Node{Kind: KindImplicitPort}
	n.AddChild(literal)

	return n
}

// AddChild appends child to the node's child list and sets child's
// parent back-reference. child must not already be attached elsewhere.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}

	n.Children = append(n.Children, child)
	child.Parent = n
}

// InsertChild inserts child at index i, shifting subsequent children right.
func (n *Node) InsertChild(i int, child *Node) {
	if child == nil {
		return
	}

	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
	child.Parent = n
}

// Detach severs n from its parent's child list and clears n's parent
// back-reference. It is a no-op if n has no parent.
func (n *Node) Detach() {
	if n.Parent == nil {
		return
	}

	n.Parent.RemoveChild(n)
}

// RemoveChild removes the first occurrence of child from n's child
// list and clears its parent back-reference. Returns true if found.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil

			return true
		}
	}

	return false
}

// ReplaceChild replaces the first occurrence of old in n's child list
// with replacement, rewiring parent back-references on both ends.
// Returns true if old was found.
func (n *Node) ReplaceChild(old, replacement *Node) bool {
	for i, c := range n.Children {
		if c == old {
			n.Children[i] = replacement
			old.Parent = nil
			replacement.Parent = n

			return true
		}
	}

	return false
}

// SpliceSelf reparents all of n's children into n's own parent, at n's
// position, preserving order, then detaches n. Used by Flatten to
// collapse an interior Block once its contents have been processed.
// It is a no-op if n has no parent (the root block is never spliced).
func (n *Node) SpliceSelf() {
	parent := n.Parent
	if parent == nil {
		return
	}

	idx := -1

	for i, c := range parent.Children {
		if c == n {
			idx = i

			break
		}
	}

	if idx < 0 {
		return
	}

	children := n.Children
	for _, c := range children {
		c.Parent = parent
	}

	rest := make([]*Node, 0, len(parent.Children)-1+len(children))
	rest = append(rest, parent.Children[:idx]...)
	rest = append(rest, children...)
	rest = append(rest, parent.Children[idx+1:]...)
	parent.Children = rest
	n.Parent = nil
	n.Children = nil
}

// Clone produces a deep copy of the subtree rooted at n, with fresh
// parent links and no structure shared with the original. Every pass
// that inlines or substitutes a subtree must clone first.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	clone := *n
	clone.Parent = nil

	if n.Args != nil {
		clone.Args = make(map[string]*Node, len(n.Args))
		for k, v := range n.Args {
			clone.Args[k] = v.Clone()
		}
	}

	if n.ArgNames != nil {
		clone.ArgNames = append([]string(nil), n.ArgNames...)
	}

	if n.Children != nil {
		clone.Children = make([]*Node, len(n.Children))

		for i, c := range n.Children {
			cc := c.Clone()
			cc.Parent = &clone
			clone.Children[i] = cc
		}
	}

	return &clone
}

// Outport returns the first child (the outport slot of a Link), or nil.
func (n *Node) Outport() *Node {
	if len(n.Children) < 1 {
		return nil
	}

	return n.Children[0]
}

// Inport returns the second child (the inport slot of a Link), or nil.
func (n *Node) Inport() *Node {
	if len(n.Children) < 2 {
		return nil
	}

	return n.Children[1]
}

// SetOutport replaces the outport slot of a Link node.
func (n *Node) SetOutport(v *Node) {
	if len(n.Children) < 1 {
		n.AddChild(v)

		return
	}

	n.Children[0].Parent = nil
	n.Children[0] = v
	v.Parent = n
}

// SetInport replaces the inport slot of a Link node.
func (n *Node) SetInport(v *Node) {
	if len(n.Children) < 2 {
		n.AddChild(v)

		return
	}

	n.Children[1].Parent = nil
	n.Children[1] = v
	v.Parent = n
}

// String renders a brace-bracket dump of the subtree rooted at n, for
// --dump-stages debugging output.
func (n *Node) String() string {
	var buf strings.Builder

	writeNode(&buf, n)

	return buf.String()
}

func writeNode(buf *strings.Builder, n *Node) {
	if n == nil {
		buf.WriteString("nil")

		return
	}

	buf.WriteString(n.Kind.String())
	writeAttrs(buf, n)

	if len(n.Children) > 0 {
		buf.WriteString("{")

		for i, c := range n.Children {
			if i > 0 {
				buf.WriteString(", ")
			}

			writeNode(buf, c)
		}

		buf.WriteString("}")
	}
}

func writeAttrs(buf *strings.Builder, n *Node) {
	switch n.Kind {
	case KindBlock:
		if n.Namespace != "" {
			fmt.Fprintf(buf, "(ns=%s)", n.Namespace)
		}
	case KindComponent:
		fmt.Fprintf(buf, "(name=%s, args=%s)", n.Name, strings.Join(n.ArgNames, ","))
	case KindAssignment:
		fmt.Fprintf(buf, "(ident=%s, type=%s)", n.Ident, n.ActorType)
	case KindID:
		fmt.Fprintf(buf, "(ident=%s)", n.Ident)
	case KindValue:
		fmt.Fprintf(buf, "(value=%s)", formatValue(n.Value))
	case KindPort, KindInPort, KindOutPort, KindInternalInPort, KindInternalOutPort:
		fmt.Fprintf(buf, "(actor=%s, port=%s)", n.Actor, n.PortName)
	case KindNamedArg, KindConstant, KindLink, KindImplicitPort:
		// no scalar attributes beyond children
	}
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
