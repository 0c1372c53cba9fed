package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/klauern/skillmeta/internal/logging"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything fn printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	runErr := fn()

	if err := w.Close(); err != nil {
		t.Fatalf("failed to close pipe writer: %v", err)
	}
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("failed to close pipe reader: %v", err)
	}

	return buf.String(), runErr
}

func TestConfigureLogging(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantDebug bool
		wantInfo  bool
	}{
		"no flags defaults to warnings only": {
			args:      []string{"skillmeta", "version"},
			wantDebug: false,
			wantInfo:  false,
		},
		"verbose flag enables info level": {
			args:      []string{"skillmeta", "--verbose", "version"},
			wantDebug: false,
			wantInfo:  true,
		},
		"debug flag enables debug level": {
			args:      []string{"skillmeta", "--debug", "version"},
			wantDebug: true,
			wantInfo:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			logging.SetDefault(logging.New(logging.DefaultOptions()))

			_, err := captureStdout(t, func() error {
				return Run(context.Background(), tt.args)
			})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			logger := slog.Default()
			ctx := context.Background()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if got := logger.Enabled(ctx, slog.LevelInfo); got != tt.wantInfo {
				t.Errorf("info enabled = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
