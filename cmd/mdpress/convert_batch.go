package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	mdpress "github.com/mdpress/mdpress"
)

// Output directories are created owner-writable, group-readable.
const dirPermissions = 0o750

var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
)

// ConversionResult is the outcome of one file's conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Warnings   []mdpress.Warning
	Err        error
	Duration   time.Duration
}

// convertBatch fans the file list out over the pool. Each worker holds
// one converter for its whole run so browser instances are reused
// across files rather than relaunched per job.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for n := min(pool.Size(), len(files)); n > 0; n-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(ctx, pool, jobs, files, results, params)
		}()
	}
	wg.Wait()

	return results
}

// runWorker drains jobs with a single converter. If the converter
// cannot be acquired, every job this worker would have taken is marked
// failed instead of being silently dropped.
func runWorker(ctx context.Context, pool Pool, jobs <-chan int, files []FileToConvert, results []ConversionResult, params *conversionParams) {
	conv, err := pool.Acquire()
	if err != nil {
		for idx := range jobs {
			results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
		}
		return
	}
	defer pool.Release(conv)

	for idx := range jobs {
		if ctx.Err() != nil {
			results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
			continue
		}
		results[idx] = convertFile(ctx, conv, files[idx], params)
	}
}

// convertFile reads one markdown source and runs it through conv.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) (result ConversionResult) {
	start := time.Now()
	result.InputPath = f.InputPath
	result.OutputPath = f.OutputPath
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		return result
	}

	input := mdpress.Input{
		Markdown:   string(content),
		SourceDir:  filepath.Dir(f.InputPath),
		OutputPath: f.OutputPath,
		HTMLOnly:   params.htmlOnly,
		Page:       params.page,
	}
	if params.htmlOnly || params.htmlOutput {
		input.HTMLPath = htmlOutputPath(f.OutputPath)
	}

	res, err := conv.Convert(ctx, input)
	if err != nil {
		result.Err = err
		return result
	}

	result.Warnings = res.Warnings
	if params.htmlOnly {
		result.OutputPath = input.HTMLPath
	}
	return result
}

// ResultSummary tallies a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

func countResults(results []ConversionResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// printResults reports the batch outcome and returns the failure count.
// Failures and diagram warnings go to stderr; progress goes to stdout
// and is suppressed by quiet.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "WARNING %s: diagram %d: %s\n", r.InputPath, w.Block, w.Message)
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
	return summary.Failed
}
