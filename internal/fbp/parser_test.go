package fbp

import (
	"testing"

	"github.com/flowc-lang/flowc/pkg/ast"
	"github.com/flowc-lang/flowc/pkg/diag"
)

func TestParseSimpleScript(t *testing.T) {
	src := `
a: std.Identity();
b: std.Identity();
a.out > b.in;
`

	root, diags := Parse(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	if len(root.Children) != 3 {
		t.Fatalf("expected 3 top-level statements, got %d: %s", len(root.Children), root)
	}

	if root.Children[0].Kind != ast.KindAssignment || root.Children[0].Ident != "a" {
		t.Errorf("first statement = %s, want assignment a", root.Children[0])
	}

	link := root.Children[2]
	if link.Kind != ast.KindLink {
		t.Fatalf("third statement = %s, want Link", link)
	}

	if link.Outport().Kind != ast.KindOutPort || link.Outport().Actor != "a" || link.Outport().PortName != "out" {
		t.Errorf("link outport = %s, want OutPort(a, out)", link.Outport())
	}

	if link.Inport().Kind != ast.KindInPort || link.Inport().Actor != "b" || link.Inport().PortName != "in" {
		t.Errorf("link inport = %s, want InPort(b, in)", link.Inport())
	}
}

func TestParseLiteralSource(t *testing.T) {
	root, diags := Parse(`42 > a.in;`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	link := root.Children[0]
	if link.Outport().Kind != ast.KindImplicitPort {
		t.Fatalf("outport = %s, want ImplicitPort", link.Outport())
	}

	if lit := link.Outport().Children[0]; lit.Value != 42 {
		t.Errorf("literal = %v, want 42", lit.Value)
	}
}

func TestParseNamedArgs(t *testing.T) {
	root, diags := Parse(`a: std.Constant(data="hi", n=3);`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	assignment := root.Children[0]
	if len(assignment.Children) != 2 {
		t.Fatalf("expected 2 named args, got %d", len(assignment.Children))
	}

	dataArg := assignment.Children[0]
	if dataArg.Children[0].Ident != "data" || dataArg.Children[1].Value != "hi" {
		t.Errorf("first named arg = %s, want data=\"hi\"", dataArg)
	}
}

func TestParseComponentWithBoundaryPorts(t *testing.T) {
	src := `
component C(x) in -> out {
  i: std.Identity();
  .in > i.in;
  i.out > .out;
}
`

	root, diags := Parse(src)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	component := root.Children[0]
	if component.Kind != ast.KindComponent || component.Name != "C" {
		t.Fatalf("got %s, want Component C", component)
	}

	if len(component.ArgNames) != 1 || component.ArgNames[0] != "x" {
		t.Errorf("ArgNames = %v, want [x]", component.ArgNames)
	}

	body := component.Children[0]
	if body.Kind != ast.KindBlock {
		t.Fatalf("component body = %s, want Block", body)
	}

	inLink := body.Children[1]
	if inLink.Outport().Kind != ast.KindInternalInPort || inLink.Outport().PortName != "in" {
		t.Errorf("inLink outport = %s, want InternalInPort(in)", inLink.Outport())
	}

	if inLink.Inport().Kind != ast.KindInPort || inLink.Inport().Actor != "i" {
		t.Errorf("inLink inport = %s, want InPort(i, in)", inLink.Inport())
	}

	outLink := body.Children[2]
	if outLink.Outport().Kind != ast.KindOutPort || outLink.Outport().Actor != "i" {
		t.Errorf("outLink outport = %s, want OutPort(i, out)", outLink.Outport())
	}

	if outLink.Inport().Kind != ast.KindInternalOutPort || outLink.Inport().PortName != "out" {
		t.Errorf("outLink inport = %s, want InternalOutPort(out)", outLink.Inport())
	}
}

func TestParseMissingSemicolonReportsParseError(t *testing.T) {
	_, diags := Parse(`a: std.Identity()`)
	if len(diags) == 0 {
		t.Fatal("expected a ParseError diagnostic, got none")
	}

	if diags[0].Reason != diag.ReasonParseError {
		t.Errorf("reason = %v, want ParseError", diags[0].Reason)
	}
}

func TestParseStopsAtUnexpectedToken(t *testing.T) {
	root, diags := Parse(`; a: std.Identity();`)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for the stray ';'")
	}

	if len(root.Children) != 0 {
		t.Errorf("expected no statements parsed after the stray token, got %d", len(root.Children))
	}
}
