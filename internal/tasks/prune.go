package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/nobarhq/nobarctl/internal/models"
	"golang.org/x/time/rate"
)

// PruneOpts contains configuration for a bulk favorite deletion.
type PruneOpts struct {
	Before    time.Time // delete favorites added before this instant
	RateLimit float64   // requests per second (default: 2)
	DryRun    bool      // report matches without deleting
}

// PruneFailure records one favorite that could not be deleted.
type PruneFailure struct {
	Favorite models.Favorite
	Err      error
}

// PruneResult contains all data from a prune operation.
type PruneResult struct {
	Matched   int               // favorites older than the cutoff
	Deleted   int               // successfully deleted
	Failures  []PruneFailure    // favorites that failed to delete
	Remaining []models.Favorite // the list as last reported by the backend
}

// Prune deletes every favorite added before opts.Before.
//
// Deletes run strictly one at a time: each DELETE response carries the
// updated favorites list, so concurrent deletes would race each other's
// view of the list. A rate limiter spaces the calls out instead of a
// worker pool.
func (e *Engine) Prune(ctx context.Context, opts PruneOpts, prog chan<- ProgressUpdate) (*PruneResult, error) {
	if opts.Before.IsZero() {
		return nil, fmt.Errorf("prune cutoff is required")
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 2
	}

	emit(prog, ProgressUpdate{Phase: FetchFavorites, Message: "fetching favorites"})

	favorites, err := e.client.ListFavorites(ctx)
	if err != nil {
		return nil, err
	}

	var targets []models.Favorite
	for _, fav := range favorites {
		added, err := fav.AddedAt()
		if err != nil {
			e.logger.Warnf("skipping favorite with unparseable timestamp %q: %v", fav.Timestamp, err)
			continue
		}
		if added.Before(opts.Before) {
			targets = append(targets, fav)
		}
	}

	result := &PruneResult{Matched: len(targets), Remaining: favorites}
	if opts.DryRun || len(targets) == 0 {
		emit(prog, ProgressUpdate{Phase: Done, Total: len(targets), Message: "nothing deleted"})
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	for i, fav := range targets {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("prune interrupted: %w", err)
		}

		emit(prog, ProgressUpdate{
			Phase:   DeleteFavorites,
			Step:    i + 1,
			Total:   len(targets),
			Message: fav.Judul,
		})

		remaining, message, err := e.client.DeleteFavorite(ctx, fav.Timestamp)
		if err != nil {
			result.Failures = append(result.Failures, PruneFailure{Favorite: fav, Err: err})
			e.logger.Warnf("failed to delete %q: %v", fav.Judul, err)
			continue
		}

		result.Deleted++
		result.Remaining = remaining
		e.logger.Debugf("deleted %q: %s", fav.Judul, message)
	}

	emit(prog, ProgressUpdate{
		Phase:   Done,
		Step:    result.Deleted,
		Total:   len(targets),
		Message: fmt.Sprintf("deleted %d of %d favorites", result.Deleted, len(targets)),
	})

	return result, nil
}
