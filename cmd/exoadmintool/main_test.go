package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"
)

// TestRunReturnsValidationError re-invokes the test binary so run() can
// execute against a deliberately incomplete configuration. run() must hand
// the validation error back to main rather than exiting itself, so the
// helper process reports a distinguishing exit code.
func TestRunReturnsValidationError(t *testing.T) {
	if os.Getenv("EXOADMINTOOL_TEST_RUN") == "1" {
		os.Args = []string{"exoadmintool", "-action", "scan"}
		if err := run(); err != nil {
			os.Exit(42)
		}
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestRunReturnsValidationError")
	env := []string{"EXOADMINTOOL_TEST_RUN=1"}
	for _, kv := range os.Environ() {
		// Inherited EXOADMIN* variables could complete the configuration.
		if !strings.HasPrefix(kv, "EXOADMIN") {
			env = append(env, kv)
		}
	}
	cmd.Env = env

	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("helper process error = %v, want non-zero exit", err)
	}
	if code := exitErr.ExitCode(); code != 42 {
		t.Errorf("helper exit code = %d, want 42 (run() should return the validation error)", code)
	}
}
