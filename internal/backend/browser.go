package backend

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mdpress/mdpress/internal/fileutil"
	"github.com/mdpress/mdpress/internal/process"
)

// defaultBrowserTimeout bounds page load and print when the caller's
// context has no deadline.
const defaultBrowserTimeout = 2 * time.Minute

// Browser prints HTML to PDF through headless Chrome via go-rod.
// The browser launches lazily on first use and is reused across
// conversions. Rod downloads Chromium on first run if none is found;
// set ROD_BROWSER_BIN to use a pre-installed browser.
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

var _ Backend = (*Browser)(nil)

// NewBrowser creates a browser backend. A timeout of 0 uses the default.
func NewBrowser(timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = defaultBrowserTimeout
	}
	return &Browser{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (b *Browser) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use a pre-installed browser if specified (Docker, CI).
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments.
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.launcher = l
	return nil
}

// Close releases browser resources, including any orphaned Chrome
// child processes left behind after an unclean shutdown.
func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.browser = nil

	if b.launcher != nil {
		pid := b.launcher.PID()
		b.launcher.Kill()
		if pid > 0 {
			process.KillProcessGroup(pid)
		}
		b.launcher = nil
	}
	return err
}

// WritePDF stages the HTML in a temp file, prints it in headless
// Chrome and writes the result atomically to req.OutputPath.
func (b *Browser) WritePDF(ctx context.Context, req *Request) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(req.HTML, "html")
	if err != nil {
		return err
	}
	defer cleanup()

	pdf, err := b.renderFromFile(ctx, tmpPath, req.Page)
	if err != nil {
		return err
	}

	return fileutil.WriteFileAtomic(req.OutputPath, pdf, 0o644)
}

// renderFromFile opens a local HTML file in headless Chrome and renders
// it to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (b *Browser) renderFromFile(ctx context.Context, filePath string, page Page) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	p, err := b.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer p.Close()

	// Wait for page load with timeout from context or default.
	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := p.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(page.WidthInches),
		PaperHeight:     floatPtr(page.HeightInches),
		MarginTop:       floatPtr(page.MarginInches),
		MarginBottom:    floatPtr(page.MarginInches),
		MarginLeft:      floatPtr(page.MarginInches),
		MarginRight:     floatPtr(page.MarginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
