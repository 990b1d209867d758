package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
)

// Doctor statuses, worst wins.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult aggregates every diagnostic probe for one doctor run.
type doctorResult struct {
	Status   string      `json:"status"`
	Chrome   chromeInfo  `json:"chrome"`
	Mermaid  mermaidInfo `json:"mermaid"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type mermaidInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
	MermaidBin    string `json:"mermaid_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

func (r *doctorResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) failf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd checks the host for everything a conversion needs.
// Warnings still exit zero; only hard errors exit nonzero.
func runDoctorCmd(args []string, env *Environment) int {
	asJSON := false
	for _, arg := range args {
		if arg == "--json" {
			asJSON = true
		}
	}

	result := runDoctor()

	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor() *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  os.Getenv("ROD_NO_SANDBOX"),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
			MermaidBin: os.Getenv("MERMAID_BIN"),
		},
	}

	checkChrome(result)
	checkMermaid(result)
	checkEnvironment(result)
	checkSystem(result)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}
	return result
}

// binaryVersion runs "<path> --version" and returns the trimmed output.
func binaryVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkChrome resolves the browser the PDF backend would launch. Order
// matches the backend itself: ROD_BROWSER_BIN wins, then rod's own
// lookup across the usual install locations.
func checkChrome(result *doctorResult) {
	path := result.Env.BrowserBin
	if path == "" {
		var found bool
		path, found = launcher.LookPath()
		if !found {
			result.failf("Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}
	if _, err := os.Stat(path); err != nil {
		result.failf("Chrome not found at %s", path)
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = path
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	if version, err := binaryVersion(path); err == nil {
		result.Chrome.Version = version
	} else {
		result.warnf("Could not get Chrome version: %v", err)
	}
}

// checkMermaid probes for the Mermaid CLI. Its absence is only a
// warning: conversion still works, diagram blocks become placeholders.
func checkMermaid(result *doctorResult) {
	bin := result.Env.MermaidBin
	if bin == "" {
		bin = "mmdc"
	}

	path, err := exec.LookPath(bin)
	if err != nil {
		result.warnf("Mermaid CLI not found. Diagrams will render as placeholders. " +
			"Install with: npm install -g @mermaid-js/mermaid-cli")
		return
	}

	result.Mermaid.Found = true
	result.Mermaid.Path = path
	if version, err := binaryVersion(path); err == nil {
		result.Mermaid.Version = version
	}
}

func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warnf("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer reports whether we look containerized and which signal
// tipped it. MDPRESS_CONTAINER=1 is an explicit override for setups
// none of the heuristics cover.
func isContainer() (bool, string) {
	if os.Getenv("MDPRESS_CONTAINER") == "1" {
		return true, "MDPRESS_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory accepts writes, since both
// the diagram renderer and the browser backend stage files there.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	probe := filepath.Join(tmpDir, "mdpress-doctor-test")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		result.failf("Temp directory not writable: %s", tmpDir)
		return
	}
	_ = os.Remove(probe)
	result.System.TempWritable = true
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	section := func(name string) {
		fmt.Fprintln(w, name)
	}
	line := func(format string, args ...any) {
		fmt.Fprintf(w, "  "+format+"\n", args...)
	}

	fmt.Fprintf(w, "mdpress doctor\n\n")

	section("Chrome/Chromium")
	if r.Chrome.Found {
		line("[OK] Found at %s", r.Chrome.Path)
		if r.Chrome.Version != "" {
			line("[OK] Version: %s", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			line("[OK] Sandbox: enabled")
		} else {
			line("[OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		line("[ERROR] Not found")
	}
	fmt.Fprintln(w)

	section("Mermaid CLI")
	if r.Mermaid.Found {
		line("[OK] Found at %s", r.Mermaid.Path)
		if r.Mermaid.Version != "" {
			line("[OK] Version: %s", r.Mermaid.Version)
		}
	} else {
		line("[WARN] Not found (diagrams render as placeholders)")
	}
	fmt.Fprintln(w)

	section("Environment")
	line("[OK] Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line("[OK] Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line("[OK] CI: detected")
	}
	fmt.Fprintln(w)

	section("System")
	if r.System.TempWritable {
		line("[OK] Temp directory: writable")
	} else {
		line("[ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		section("Warnings:")
		for _, msg := range r.Warnings {
			line("[WARN] %s", msg)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		section("Errors:")
		for _, msg := range r.Errors {
			line("[ERROR] %s", msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
