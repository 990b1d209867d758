package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestIsContainerExplicitOverride(t *testing.T) {
	t.Setenv("MDPRESS_CONTAINER", "1")

	in, hint := isContainer()
	if !in {
		t.Fatal("expected container detection with MDPRESS_CONTAINER=1")
	}
	if hint != "MDPRESS_CONTAINER=1" {
		t.Errorf("hint = %q", hint)
	}
}

func TestCheckSystemTempWritable(t *testing.T) {
	t.Parallel()

	result := &doctorResult{}
	checkSystem(result)

	if !result.System.TempWritable {
		t.Error("temp directory should be writable in tests")
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestCheckMermaidMissing(t *testing.T) {
	t.Setenv("MERMAID_BIN", "/nonexistent/mmdc-binary")

	result := &doctorResult{Env: envInfo{MermaidBin: "/nonexistent/mmdc-binary"}}
	checkMermaid(result)

	if result.Mermaid.Found {
		t.Error("nonexistent binary should not be found")
	}
	if len(result.Warnings) == 0 {
		t.Error("missing mmdc should produce a warning, not an error")
	}
	if len(result.Errors) != 0 {
		t.Errorf("missing mmdc must not be an error: %v", result.Errors)
	}
}

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	r := &doctorResult{
		Status: "warnings",
		Chrome: chromeInfo{Found: true, Path: "/usr/bin/chromium", Version: "Chromium 120", Sandbox: true},
		Mermaid: mermaidInfo{
			Found: false,
		},
		Env:      envInfo{OS: "linux", Arch: "amd64", CI: true},
		System:   systemInfo{TempWritable: true},
		Warnings: []string{"something minor"},
	}

	var buf bytes.Buffer
	printDoctorResult(&buf, r)
	out := buf.String()

	for _, want := range []string{
		"Chrome/Chromium",
		"/usr/bin/chromium",
		"Mermaid CLI",
		"placeholders",
		"CI: detected",
		"something minor",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctorCmdJSON(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &bytes.Buffer{}}

	runDoctorCmd([]string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout.String())
	}
	if result.Status == "" {
		t.Error("status should always be set")
	}
}
