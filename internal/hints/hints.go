// Package hints maps well-known failure modes to one-line remediation
// advice. Each hint renders as "\n  hint: <text>" so callers can append
// it directly to an error message.
package hints

import (
	"os"
	"strings"

	"github.com/mdpress/mdpress/internal/fileutil"
)

// IsInContainer reports whether the process appears to run inside
// Docker. Overridable in tests.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

func runningInCI() bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the environment variables that usually fix
// a failed Chrome launch, tailored to container and CI environments.
func ForBrowserConnect() string {
	var parts []string
	if (runningInCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		parts = append(parts, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		parts = append(parts, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	if len(parts) == 0 {
		return ""
	}
	return render(strings.Join(parts, "; "))
}

// ForDiagramRenderer suggests how to get a working Mermaid CLI.
func ForDiagramRenderer() string {
	if os.Getenv("MERMAID_BIN") != "" {
		return render("check that MERMAID_BIN points to a valid mmdc binary")
	}
	return render("install with: npm install -g @mermaid-js/mermaid-cli, or set MERMAID_BIN")
}

func ForTimeout() string {
	return render("for large documents, use --timeout flag")
}

func ForConfigNotFound() string {
	return render("use --config /path/to/file.yaml, or place the file under ~/.config/mdpress/")
}

func ForOutputDirectory() string {
	return render("check parent directory exists and is writable")
}

// ForStyleNotFound lists the styles that do exist. Empty input yields
// no hint at all.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return render("available: " + strings.Join(available, ", "))
}

func render(text string) string {
	return "\n  hint: " + text
}
