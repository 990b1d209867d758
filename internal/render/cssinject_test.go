package render

import (
	"strings"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "into head",
			html: "<html><head></head><body></body></html>",
			css:  "body{color:red}",
			want: "<style>body{color:red}</style></head>",
		},
		{
			name: "after body when no head",
			html: "<html><body><p>x</p></body></html>",
			css:  "p{margin:0}",
			want: "<body><style>p{margin:0}</style>",
		},
		{
			name: "prepended as last resort",
			html: "<p>bare fragment</p>",
			css:  "p{margin:0}",
			want: "<style>p{margin:0}</style><p>",
		},
		{
			name: "empty css is a no-op",
			html: "<html><head></head></html>",
			css:  "",
			want: "<html><head></head></html>",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := InjectCSS(tt.html, tt.css)
			if !strings.Contains(got, tt.want) {
				t.Errorf("InjectCSS() = %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestInjectCSSSanitizes(t *testing.T) {
	t.Parallel()

	got := InjectCSS("<html><head></head></html>", "body{}</style><script>alert(1)</script>")
	if strings.Contains(got, "</style><script>") {
		t.Error("CSS closing sequence not sanitized")
	}
}
