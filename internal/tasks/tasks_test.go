package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nobarhq/nobarctl/internal/api"
	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/session"
	"golang.org/x/oauth2"
)

// pruneBackend is a minimal favorites backend whose DELETE responses
// carry the updated list.
type pruneBackend struct {
	mu        sync.Mutex
	favorites []models.Favorite
	deleted   []string
	failOn    map[string]bool
}

func (b *pruneBackend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			writeList(w, b.favorites, "")
		case http.MethodDelete:
			var req map[string]string
			json.NewDecoder(r.Body).Decode(&req)
			ts := req["timestamp"]
			if b.failOn[ts] {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"data": null, "message": "gagal menghapus"}`))
				return
			}
			kept := b.favorites[:0:0]
			for _, fav := range b.favorites {
				canon, _ := models.CanonicalTimestamp(fav.Timestamp)
				if canon == ts {
					b.deleted = append(b.deleted, ts)
					continue
				}
				kept = append(kept, fav)
			}
			b.favorites = kept
			writeList(w, b.favorites, "Favorit berhasil dihapus")
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}
}

func writeList(w http.ResponseWriter, favorites []models.Favorite, message string) {
	data, _ := json.Marshal(favorites)
	fmt.Fprintf(w, `{"data": %s, "message": %q}`, data, message)
}

func newTestEngine(t *testing.T, baseURL string) *Engine {
	t.Helper()
	store := session.NewStore(session.NewMemoryStorage(), nil)
	store.Restore()
	if err := store.SetAuthenticated(&oauth2.Token{AccessToken: "tok"}); err != nil {
		t.Fatalf("failed to authenticate store: %v", err)
	}
	client := api.NewClient(api.ClientOpts{BaseURL: baseURL, Store: store})
	return NewEngine(client, nil)
}

func TestPrune(t *testing.T) {
	cutoff := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	seed := func() []models.Favorite {
		return []models.Favorite{
			{Timestamp: "2024-03-01T10:15:30.123Z", Username: "budi", Judul: "Old A"},
			{Timestamp: "2024-03-15T08:00:00.000Z", Username: "budi", Judul: "Old B"},
			{Timestamp: "2024-05-01T12:00:00.000Z", Username: "budi", Judul: "Recent"},
		}
	}

	t.Run("Deletes Only Favorites Older Than Cutoff", func(t *testing.T) {
		backend := &pruneBackend{favorites: seed()}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		engine := newTestEngine(t, server.URL)

		result, err := engine.Prune(context.Background(), PruneOpts{Before: cutoff, RateLimit: 100}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Matched != 2 || result.Deleted != 2 {
			t.Errorf("expected 2 matched and deleted, got matched=%d deleted=%d", result.Matched, result.Deleted)
		}
		if len(result.Remaining) != 1 || result.Remaining[0].Judul != "Recent" {
			t.Errorf("expected only 'Recent' to remain, got %v", result.Remaining)
		}
		if len(backend.deleted) != 2 {
			t.Errorf("expected 2 backend deletes, got %v", backend.deleted)
		}
	})

	t.Run("Dry Run Reports Matches Without Deleting", func(t *testing.T) {
		backend := &pruneBackend{favorites: seed()}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		engine := newTestEngine(t, server.URL)

		result, err := engine.Prune(context.Background(), PruneOpts{Before: cutoff, DryRun: true}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Matched != 2 || result.Deleted != 0 {
			t.Errorf("expected 2 matched and none deleted, got matched=%d deleted=%d", result.Matched, result.Deleted)
		}
		if len(backend.deleted) != 0 {
			t.Errorf("expected no backend deletes, got %v", backend.deleted)
		}
	})

	t.Run("Collects Failures And Keeps Going", func(t *testing.T) {
		backend := &pruneBackend{
			favorites: seed(),
			failOn:    map[string]bool{"2024-03-01T10:15:30Z": true},
		}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		engine := newTestEngine(t, server.URL)

		result, err := engine.Prune(context.Background(), PruneOpts{Before: cutoff, RateLimit: 100}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Deleted != 1 {
			t.Errorf("expected 1 deleted, got %d", result.Deleted)
		}
		if len(result.Failures) != 1 || result.Failures[0].Favorite.Judul != "Old A" {
			t.Errorf("expected 'Old A' to fail, got %v", result.Failures)
		}
	})

	t.Run("Emits Progress Events In Order", func(t *testing.T) {
		backend := &pruneBackend{favorites: seed()}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		engine := newTestEngine(t, server.URL)

		prog := make(chan ProgressUpdate, 16)
		_, err := engine.Prune(context.Background(), PruneOpts{Before: cutoff, RateLimit: 100}, prog)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(prog)

		var phases []Phase
		for update := range prog {
			phases = append(phases, update.Phase)
		}
		want := []Phase{FetchFavorites, DeleteFavorites, DeleteFavorites, Done}
		if len(phases) != len(want) {
			t.Fatalf("expected %d events, got %d", len(want), len(phases))
		}
		for i, phase := range want {
			if phases[i] != phase {
				t.Errorf("event %d: expected phase %d, got %d", i, phase, phases[i])
			}
		}
	})

	t.Run("Requires A Cutoff", func(t *testing.T) {
		engine := newTestEngine(t, "http://example.com")

		if _, err := engine.Prune(context.Background(), PruneOpts{}, nil); err == nil {
			t.Error("expected error for zero cutoff")
		}
	})

	t.Run("Cancellation Stops Mid-Run", func(t *testing.T) {
		backend := &pruneBackend{favorites: seed()}
		server := httptest.NewServer(backend.handler(t))
		defer server.Close()

		engine := newTestEngine(t, server.URL)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// The fetch fails under a cancelled context before any delete runs.
		if _, err := engine.Prune(ctx, PruneOpts{Before: cutoff}, nil); err == nil {
			t.Error("expected error under cancelled context")
		}
		if len(backend.deleted) != 0 {
			t.Errorf("expected no deletes, got %v", backend.deleted)
		}
	})
}
