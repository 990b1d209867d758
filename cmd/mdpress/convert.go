package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	mdpress "github.com/mdpress/mdpress"
	"github.com/mdpress/mdpress/internal/assets"
	"github.com/mdpress/mdpress/internal/config"
	"github.com/mdpress/mdpress/internal/hints"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	// Load configuration: CLI flag > env var > defaults
	cfg := config.DefaultConfig()
	configPath := flags.common.config
	if configPath == "" {
		configPath = envCfg.ConfigPath
	}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return withHint(fmt.Errorf("loading config: %w", err))
		}
		cfg = loaded
	}

	// Merge env vars, then CLI flags (CLI wins)
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout)
	if err != nil {
		return err
	}

	// Resolve input path
	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
	}
	inputPath := positionalArgs[0]

	// Resolve output directory
	outputDir := flags.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	// Discover files to convert
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found in %s", inputPath)
	}

	// Build page settings
	pageData, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	params := &conversionParams{
		page:       pageData,
		htmlOnly:   flags.outputMode.htmlOnly,
		htmlOutput: cfg.Output.KeepHTML,
	}

	// Resolve worker count: CLI flag > env var > auto
	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := mdpress.ResolvePoolSize(workers)
	if concurrency := len(files); poolSize > concurrency {
		poolSize = concurrency
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := newConverterPool(poolSize, buildConverterOptions(cfg, timeout)...)
	defer pool.Close()

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return withHint(firstError(results))
	}

	return nil
}

// firstError returns the first conversion error, wrapped with a batch summary
// when more than one file failed.
func firstError(results []ConversionResult) error {
	var first error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if first == nil {
				first = r.Err
			}
		}
	}
	if first == nil {
		return nil
	}
	if failed > 1 {
		return fmt.Errorf("%d conversions failed, first error: %w", failed, first)
	}
	return first
}

// withHint appends an actionable hint to well-known failure modes.
func withHint(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, mdpress.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, mdpress.ErrRendererUnavailable):
		return fmt.Errorf("%w%s", err, hints.ForDiagramRenderer())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, config.ErrConfigNotFound):
		return fmt.Errorf("%w%s", err, hints.ForConfigNotFound())
	case errors.Is(err, assets.ErrStyleNotFound):
		return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.ListStyles()))
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w%s", err, hints.ForOutputDirectory())
	default:
		return err
	}
}
