package main

import (
	"testing"
)

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"doc.md",
		"-o", "out/",
		"-w", "2",
		"-t", "45s",
		"--backend", "native",
		"-p", "a4",
		"--orientation", "landscape",
		"--margin", "0.75",
		"--style", "report",
		"--no-diagrams",
		"--html",
		"-q",
	}

	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		t.Fatalf("parseConvertFlags() error: %v", err)
	}

	if len(positional) != 1 || positional[0] != "doc.md" {
		t.Errorf("positional = %v", positional)
	}
	if flags.output != "out/" {
		t.Errorf("output = %q", flags.output)
	}
	if flags.workers != 2 {
		t.Errorf("workers = %d", flags.workers)
	}
	if flags.timeout != "45s" {
		t.Errorf("timeout = %q", flags.timeout)
	}
	if flags.backend != "native" {
		t.Errorf("backend = %q", flags.backend)
	}
	if flags.page.size != "a4" || flags.page.orientation != "landscape" || flags.page.margin != 0.75 {
		t.Errorf("page flags = %+v", flags.page)
	}
	if flags.style.style != "report" {
		t.Errorf("style = %q", flags.style.style)
	}
	if !flags.diagrams.disabled {
		t.Error("expected no-diagrams to be set")
	}
	if !flags.outputMode.html {
		t.Error("expected html to be set")
	}
	if !flags.common.quiet {
		t.Error("expected quiet to be set")
	}
}

func TestParseConvertFlagsDefaults(t *testing.T) {
	t.Parallel()

	flags, positional, err := parseConvertFlags([]string{"doc.md"})
	if err != nil {
		t.Fatalf("parseConvertFlags() error: %v", err)
	}

	if len(positional) != 1 {
		t.Errorf("positional = %v", positional)
	}
	if flags.workers != 0 || flags.output != "" || flags.backend != "" {
		t.Errorf("unexpected defaults: %+v", flags)
	}
	if flags.diagrams.disabled || flags.diagrams.strict || flags.style.noStyle {
		t.Errorf("bool flags should default to false: %+v", flags)
	}
}

func TestParseConvertFlagsUnknownFlag(t *testing.T) {
	t.Parallel()

	if _, _, err := parseConvertFlags([]string{"--bogus"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}
