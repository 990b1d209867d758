package mdpress

import (
	"errors"
	"testing"
	"time"
)

func TestPageSettingsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		page    *PageSettings
		wantErr error
	}{
		{
			name: "nil settings are valid",
			page: nil,
		},
		{
			name: "defaults are valid",
			page: DefaultPageSettings(),
		},
		{
			name: "case-insensitive size and orientation",
			page: &PageSettings{Size: "A4", Orientation: "Landscape", Margin: 1},
		},
		{
			name:    "unknown size",
			page:    &PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5},
			wantErr: ErrInvalidPageSize,
		},
		{
			name:    "unknown orientation",
			page:    &PageSettings{Size: "letter", Orientation: "diagonal", Margin: 0.5},
			wantErr: ErrInvalidOrientation,
		},
		{
			name:    "margin too small",
			page:    &PageSettings{Size: "letter", Orientation: "portrait", Margin: 0.1},
			wantErr: ErrInvalidMargin,
		},
		{
			name:    "margin too large",
			page:    &PageSettings{Size: "letter", Orientation: "portrait", Margin: 5},
			wantErr: ErrInvalidMargin,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.page.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeoutPanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestWithDiagramTimeoutPanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithDiagramTimeout(-1) did not panic")
		}
	}()
	WithDiagramTimeout(-time.Second)
}
