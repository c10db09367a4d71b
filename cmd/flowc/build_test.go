package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/flowc-lang/flowc/pkg/compiler"
)

const sampleScript = `
a: std.Identity();
b: std.Identity();
42 > a.in;
a.out > b.in;
`

func writeTempScript(t *testing.T, src string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "script.fbp")

	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp script: %v", err)
	}

	return path
}

func TestRunBuild_WritesManifestFile(t *testing.T) {
	scriptPath := writeTempScript(t, sampleScript)
	outPath := filepath.Join(t.TempDir(), "manifest.json")

	if err := runBuild(scriptPath, "s", outPath, false); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var manifest compiler.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}

	if !manifest.Valid {
		t.Errorf("manifest.Valid = false, want true")
	}

	if _, ok := manifest.Actors["s:a"]; !ok {
		t.Errorf("manifest.Actors missing s:a: %+v", manifest.Actors)
	}

	if _, ok := manifest.Actors["s:_literal_const_1"]; !ok {
		t.Errorf("manifest.Actors missing synthesized constant: %+v", manifest.Actors)
	}
}

func TestRunBuild_UnknownActorTypeInvalidatesManifest(t *testing.T) {
	scriptPath := writeTempScript(t, "a: std.DoesNotExist();\n")
	outPath := filepath.Join(t.TempDir(), "manifest.json")

	if err := runBuild(scriptPath, "s", outPath, false); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	var manifest compiler.Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}

	if manifest.Valid {
		t.Errorf("manifest.Valid = true, want false for an unknown actor type")
	}
}

func TestRunExport_WritesComponentMap(t *testing.T) {
	script := `
component C(x) in -> out {
  i: std.Identity();
  .in > i.in;
  i.out > .out;
}
c: C(x=7);
`
	scriptPath := writeTempScript(t, script)
	outPath := filepath.Join(t.TempDir(), "components.json")

	if err := runExport(scriptPath, outPath); err != nil {
		t.Fatalf("runExport: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read components: %v", err)
	}

	var dump map[string]string
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("unmarshal components: %v", err)
	}

	if _, ok := dump["C"]; !ok {
		t.Errorf("exported components missing C: %+v", dump)
	}
}
