package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SamiJones/Threading/terrain"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig(newViper(), "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v, want %+v", cfg, defaultConfig())
	}
	p := cfg.Params()
	if p.Strategy != terrain.Parallel || p.Height != 50000 || p.Width != 1000 || p.Spacing != 50 {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestConfigFileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threading.yaml")
	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatal(err)
	}
	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("existing config overwritten without force")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	edited := strings.Replace(string(data), "strategy: parallel", "strategy: Batched", 1)
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("THREADING_THREADS", "3")
	cfg, err := loadConfig(newViper(), path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Params().Strategy != terrain.Batched {
		t.Errorf("strategy %q not read from file", cfg.Strategy)
	}
	if cfg.Threads != 3 {
		t.Errorf("threads %d not read from environment", cfg.Threads)
	}
	if cfg.BatchRows != 7 {
		t.Errorf("batch rows %d", cfg.BatchRows)
	}

	if _, err := loadConfig(newViper(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCommand(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateAndRun(t *testing.T) {
	input := filepath.Join(t.TempDir(), "array.txt")
	if _, err := execute(t, "generate", "-o", input, "--height", "30", "--width", "12", "--seed", "9"); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "--novis", "--input", input, "--height", "30", "--width", "12",
		"--threads", "4", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i != 4; i++ {
		line := "Worker " + string(rune('0'+i)) + " completed "
		if !strings.Contains(out, line) {
			t.Errorf("output lacks %q:\n%s", line, out)
		}
	}
	if strings.Index(out, "Worker 0 ") > strings.Index(out, "Worker 3 ") {
		t.Errorf("workers not reported in index order:\n%s", out)
	}
	if !strings.Contains(out, "seconds from start to finish") {
		t.Errorf("total time missing:\n%s", out)
	}

	out, err = execute(t, "run", "--novis", "--input", input, "--height", "30", "--width", "12",
		"--strategy", "batched", "--log-level", "error")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Processed in 5 batches.") || strings.Contains(out, "Worker ") {
		t.Errorf("unexpected batched output:\n%s", out)
	}
}

func TestRunRejectsTooManyThreads(t *testing.T) {
	out, err := execute(t, "run", "--novis", "--input", filepath.Join(t.TempDir(), "missing.txt"),
		"--height", "10", "--width", "4", "--threads", "11")
	var configErr *terrain.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if out != "" {
		t.Errorf("unexpected output %q", out)
	}
}
