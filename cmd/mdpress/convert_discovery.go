package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	mdpress "github.com/mdpress/mdpress"
)

var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert pairs a markdown source with its resolved PDF target.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

func isMarkdownFile(path string) bool {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func validateMarkdownExtension(path string) error {
	if !isMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// discoverFiles expands inputPath into the list of conversions to run.
// A single file must carry a markdown extension; a directory is walked
// recursively and non-markdown entries are skipped silently.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", mdpress.ErrInputNotFound, err)
		}
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		return []FileToConvert{{
			InputPath:  inputPath,
			OutputPath: resolveOutputPath(inputPath, outputDir, ""),
		}}, nil
	}

	var files []FileToConvert
	walkErr := filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownFile(path) {
			return nil
		}
		files = append(files, FileToConvert{
			InputPath:  path,
			OutputPath: resolveOutputPath(path, outputDir, inputPath),
		})
		return nil
	})
	return files, walkErr
}

// resolveOutputPath picks the PDF location for one input file. With no
// output directory the PDF lands next to its source. An outputDir
// ending in .pdf is taken as an exact file path. For directory walks
// the source's position relative to baseInputDir is mirrored under
// outputDir so the tree structure survives.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".pdf"

	switch {
	case outputDir == "":
		return filepath.Join(filepath.Dir(inputPath), name)
	case strings.HasSuffix(outputDir, ".pdf"):
		return outputDir
	}

	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// validateWorkers bounds the worker count; zero means auto-size.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > mdpress.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, mdpress.MaxPoolSize)
	}
	return nil
}

func htmlOutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, ".pdf") + ".html"
}
