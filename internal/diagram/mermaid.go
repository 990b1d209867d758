package diagram

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/mdpress/mdpress/internal/fileutil"
)

// Sentinel errors for diagram rendering.
var (
	ErrUnavailable = errors.New("diagram renderer unavailable")
	ErrSyntax      = errors.New("diagram rendering failed")
	ErrEmptySource = errors.New("diagram source cannot be empty")
	ErrNoOutput    = errors.New("diagram renderer produced no output")
)

// DefaultBin is the Mermaid CLI binary name. Override with MERMAID_BIN.
const DefaultBin = "mmdc"

// defaultTimeout bounds a single renderer invocation.
const defaultTimeout = 30 * time.Second

// lookPath is swappable in tests to simulate an absent tool.
var lookPath = exec.LookPath

// Map associates a diagram block's index in the document with the
// rendered image path. Entries are added incrementally as diagrams
// render; failed diagrams have no entry.
type Map map[int]string

// Renderer abstracts diagram-to-image rendering.
type Renderer interface {
	Render(ctx context.Context, source, outputPath string) error
}

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes the command, capturing stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// MermaidCLI renders Mermaid diagrams by invoking mmdc.
type MermaidCLI struct {
	runner  CommandRunner
	bin     string
	timeout time.Duration
}

// Compile-time interface check.
var _ Renderer = (*MermaidCLI)(nil)

// NewMermaidCLI creates a MermaidCLI renderer. The binary is taken from
// the MERMAID_BIN environment variable, falling back to "mmdc" on PATH.
// A timeout of 0 uses the default.
func NewMermaidCLI(timeout time.Duration) *MermaidCLI {
	bin := os.Getenv("MERMAID_BIN")
	if bin == "" {
		bin = DefaultBin
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MermaidCLI{runner: &ExecRunner{}, bin: bin, timeout: timeout}
}

// NewMermaidCLIWith creates a MermaidCLI with a custom runner (for testing).
func NewMermaidCLIWith(runner CommandRunner, bin string, timeout time.Duration) *MermaidCLI {
	if runner == nil {
		panic("nil CommandRunner in NewMermaidCLIWith")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MermaidCLI{runner: runner, bin: bin, timeout: timeout}
}

// Render writes a raster image for the diagram source at outputPath.
// Returns ErrUnavailable if the tool is not installed, ErrSyntax with
// the tool's diagnostic output if rendering fails, and ErrNoOutput if
// the tool exits cleanly without producing a usable file.
func (m *MermaidCLI) Render(ctx context.Context, source, outputPath string) error {
	if strings.TrimSpace(source) == "" {
		return ErrEmptySource
	}

	if _, err := lookPath(m.bin); err != nil {
		return fmt.Errorf("%w: %q not found", ErrUnavailable, m.bin)
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(source, "mmd")
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	_, stderr, err := m.runner.Run(ctx, m.bin, "-i", tmpPath, "-o", outputPath, "--quiet")
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: timed out after %v", ErrSyntax, m.timeout)
		}
		if stderr != "" {
			return fmt.Errorf("%w: %s", ErrSyntax, strings.TrimSpace(stderr))
		}
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		return fmt.Errorf("%w: %s", ErrNoOutput, outputPath)
	}

	return nil
}

// FileName returns a deterministic image file name for a diagram block.
// The name combines the block index with a content hash, so identical
// input yields identical names across runs while distinct occurrences
// of the same diagram stay independent.
func FileName(index int, source, ext string) string {
	sum := sha256.Sum256([]byte(source))
	return fmt.Sprintf("diagram-%03d-%s.%s", index, hex.EncodeToString(sum[:4]), ext)
}
