package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nobarhq/nobarctl/internal/session"
	"github.com/nobarhq/nobarctl/internal/shared"
	tu "github.com/nobarhq/nobarctl/internal/testing"
	"golang.org/x/oauth2"
)

func newTestRunner(t *testing.T, baseURL string, storage session.Storage) (*Runner, *bytes.Buffer) {
	t.Helper()
	if storage == nil {
		storage = session.NewMemoryStorage()
	}

	var buf bytes.Buffer
	config := shared.DefaultConfig()
	config.API.BaseURL = baseURL

	runner := NewRunner(RunnerOpts{
		Config: config,
		Store:  session.NewStore(storage, nil),
		Output: &buf,
	})
	return runner, &buf
}

func TestNewRunner(t *testing.T) {
	t.Run("Applies Defaults", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil || runner.store == nil || runner.client == nil {
			t.Error("expected all dependencies populated")
		}
		if runner.controller == nil || runner.engine == nil {
			t.Error("expected controller and engine populated")
		}
	})
}

func TestRequireSession(t *testing.T) {
	t.Run("Unauthenticated Viewer Is Redirected Without A Protected Call", func(t *testing.T) {
		var hits atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer server.Close()

		runner, buf := newTestRunner(t, server.URL, nil)

		err := runner.requireSession(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
		if !strings.Contains(buf.String(), "auth login") {
			t.Errorf("expected login hint, got %q", buf.String())
		}
		if hits.Load() != 0 {
			t.Errorf("expected no backend calls, got %d", hits.Load())
		}
	})

	t.Run("Stored Credential Admits The Viewer", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [], "message": ""}`))
		}))
		defer server.Close()

		storage := session.NewMemoryStorage()
		storage.Save(&oauth2.Token{AccessToken: "tok"})
		runner, buf := newTestRunner(t, server.URL, storage)

		if err := runner.requireSession(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.Len() != 0 {
			t.Errorf("expected no output for admitted viewer, got %q", buf.String())
		}
		if runner.store.Status() != session.StatusAuthenticated {
			t.Errorf("expected authenticated, got %s", runner.store.Status())
		}
	})

	t.Run("Expired Credential Falls Back To The Hint", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"data": null, "message": "token expired"}`))
		}))
		defer server.Close()

		storage := session.NewMemoryStorage()
		storage.Save(&oauth2.Token{AccessToken: "tok-stale"})
		runner, buf := newTestRunner(t, server.URL, storage)

		err := runner.requireSession(context.Background())
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}
		if !strings.Contains(buf.String(), "auth login") {
			t.Errorf("expected login hint, got %q", buf.String())
		}
	})
}

func TestWriteJSON(t *testing.T) {
	payload := map[string]string{"judul": "Laskar Pelangi"}

	t.Run("Compact", func(t *testing.T) {
		runner, buf := newTestRunner(t, "http://example.com", nil)

		if err := runner.writeJSON(payload, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := buf.String(); got != "{\"judul\":\"Laskar Pelangi\"}\n" {
			t.Errorf("unexpected output: %q", got)
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		runner, buf := newTestRunner(t, "http://example.com", nil)

		if err := runner.writeJSON(payload, true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(buf.String(), "  \"judul\"") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})

	t.Run("Write Failure Is Reported", func(t *testing.T) {
		runner, _ := newTestRunner(t, "http://example.com", nil)
		runner.output = &tu.FWriter{}

		if err := runner.writeJSON(payload, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("Unmarshalable Value Is Reported", func(t *testing.T) {
		runner, _ := newTestRunner(t, "http://example.com", nil)

		if err := runner.writeJSON(make(chan int), false); err == nil {
			t.Error("expected marshal error")
		}
	})
}

func TestWritePlain(t *testing.T) {
	t.Run("Formats Into Output", func(t *testing.T) {
		runner, buf := newTestRunner(t, "http://example.com", nil)

		if err := runner.writePlain("deleted %d of %d\n", 2, 3); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != "deleted 2 of 3\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("Write Failure Is Reported", func(t *testing.T) {
		runner, _ := newTestRunner(t, "http://example.com", nil)
		runner.output = &tu.FWriter{}

		if err := runner.writePlain("x"); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}
