package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// Flag groups mirror the config file sections so merging stays
// mechanical: each group maps onto one config struct.

type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

type styleFlags struct {
	style     string // Style name, CSS file path, or raw CSS
	assetPath string // Override asset directory for custom styles
	noStyle   bool   // Disable CSS styling
}

type diagramFlags struct {
	disabled bool
	strict   bool
	format   string
	bin      string
}

type outputFlags struct {
	html     bool // Output HTML alongside PDF
	htmlOnly bool // Output HTML only, skip PDF
}

// convertFlags is everything the convert command accepts.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	backend    string
	page       pageFlags
	style      styleFlags
	diagrams   diagramFlags
	outputMode outputFlags
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config name or file path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output, keep errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "per-file timing detail")
}

func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size (letter, a4, legal)")
	fs.StringVar(&f.orientation, "orientation", "", "portrait or landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches")
}

func addStyleFlags(fs *flag.FlagSet, f *styleFlags) {
	fs.StringVar(&f.style, "style", "", "stylesheet name or CSS file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory holding custom styles")
	fs.BoolVar(&f.noStyle, "no-style", false, "emit unstyled documents")
}

func addDiagramFlags(fs *flag.FlagSet, f *diagramFlags) {
	fs.BoolVar(&f.disabled, "no-diagrams", false, "skip diagram rendering")
	fs.BoolVar(&f.strict, "strict-diagrams", false, "treat diagram failures as fatal")
	fs.StringVar(&f.format, "diagram-format", "", "diagram image format: png, svg")
	fs.StringVar(&f.bin, "diagram-bin", "", "mermaid CLI binary (default: mmdc)")
}

func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "output HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "output HTML only, skip PDF")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent conversions (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.backend, "backend", "", "PDF backend: browser, native")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addStyleFlags(fs, &f.style)
	addDiagramFlags(fs, &f.diagrams)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
