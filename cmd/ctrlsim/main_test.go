package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/ctrlsim/internal/dynamo"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}
	for _, want := range []string{"walking", "walking_pid", "msd", "practice", "critical", "overdamped"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected preset %q in output", want)
		}
	}
}

func TestWalkCommand(t *testing.T) {
	out, err := execute(t, "walk", "--kp", "0")
	if err != nil {
		t.Fatalf("walk failed: %v", err)
	}
	if !strings.Contains(out, "final_error") || !strings.Contains(out, "position (m)") {
		t.Errorf("unexpected walk output:\n%s", out)
	}
	if !strings.Contains(out, "Kp=0") {
		t.Errorf("expected the kp override to apply:\n%s", out)
	}
}

func TestStepCommand(t *testing.T) {
	out, err := execute(t, "step", "--preset", "practice", "--phase")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	for _, want := range []string{"b=4", "underdamped", "overshoot", "phase portrait"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStepCommand_InvalidConfig(t *testing.T) {
	_, err := execute(t, "step", "--mass", "0")
	if !errors.Is(err, dynamo.ErrConfiguration) {
		t.Errorf("expected configuration error, got %v", err)
	}

	_, err = execute(t, "step", "--preset", "nonexistent")
	if err == nil || !strings.Contains(err.Error(), "unknown preset") {
		t.Errorf("expected unknown preset error, got %v", err)
	}
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("system:\n  damping: 4\n  stiffness: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "step", "--config", path, "--damping", "6")
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if !strings.Contains(out, "b=6 k=30") {
		t.Errorf("flags should override the file and the file the defaults:\n%s", out)
	}

	stiff := filepath.Join(t.TempDir(), "stiff.yaml")
	if err := os.WriteFile(stiff, []byte("system:\n  stiffness: 30\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err = execute(t, "step", "--preset", "practice", "--config", stiff)
	if err != nil {
		t.Fatalf("step failed: %v", err)
	}
	if !strings.Contains(out, "m=1 b=4 k=30") {
		t.Errorf("the file should be layered over the preset:\n%s", out)
	}
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	for _, want := range []string{"critically damped", "overdamped", "underdamped"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "compare", "--methods")
	if err != nil {
		t.Fatalf("compare --methods failed: %v", err)
	}
	if !strings.Contains(out, "spring") || !strings.Contains(out, "rk4") {
		t.Errorf("expected every method in output:\n%s", out)
	}

	out, err = execute(t, "compare", "--methods", "--stiffness", "0")
	if err != nil {
		t.Fatalf("compare --methods without stiffness failed: %v", err)
	}
	if !strings.Contains(out, "spring  n/a") {
		t.Errorf("expected spring to be reported as not applicable:\n%s", out)
	}
	if !strings.Contains(out, "rk4") {
		t.Errorf("expected rk4 to still be compared:\n%s", out)
	}
}
