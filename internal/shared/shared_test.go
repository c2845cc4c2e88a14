package shared

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Run("Writes To Provided Writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		logger.Info("hello")
		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output, got %q", buf.String())
		}
	})

	t.Run("Nil Writer Defaults To Stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	t.Run("Creates Directories And Appends", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")

		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger.Info("first line")

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected log file, got %v", err)
		}
		if !strings.Contains(string(content), "first line") {
			t.Errorf("expected logged line, got %q", string(content))
		}
	})
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	child := WithLogger(logger, "request_id", "abc-123")

	child.Info("tagged")
	if !strings.Contains(buf.String(), "abc-123") {
		t.Errorf("expected key-value pair in output, got %q", buf.String())
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	SetLogLevel(logger, log.ErrorLevel)
	logger.Info("suppressed")
	if strings.Contains(buf.String(), "suppressed") {
		t.Error("expected info line to be filtered")
	}

	logger.Error("surfaced")
	if !strings.Contains(buf.String(), "surfaced") {
		t.Error("expected error line to pass")
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid format, got %q", a)
	}
}

func TestOpenBrowser(t *testing.T) {
	t.Run("Unknown Platform Is Rejected", func(t *testing.T) {
		orig := getRuntime
		defer func() { getRuntime = orig }()
		getRuntime = func() string { return "plan9" }

		err := OpenBrowser("http://localhost:3000/favorites/2024-03-01T10:15:30Z")
		if err == nil {
			t.Fatal("expected error for unknown platform")
		}
		if !strings.Contains(err.Error(), "plan9") {
			t.Errorf("expected platform in error, got %v", err)
		}
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Tilde Prefix", "~/nobarctl/config.toml", filepath.Join(home, "nobarctl", "config.toml")},
		{"Bare Tilde", "~", home},
		{"Absolute Path Untouched", "/etc/nobarctl.toml", "/etc/nobarctl.toml"},
		{"Empty Path Untouched", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHome(tt.in); got != tt.want {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
