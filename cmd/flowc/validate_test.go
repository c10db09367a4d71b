package main

import "testing"

func TestRunValidate_NoErrorsReturnsNil(t *testing.T) {
	scriptPath := writeTempScript(t, sampleScript)

	if err := runValidate(scriptPath); err != nil {
		t.Fatalf("runValidate: %v", err)
	}
}
