package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// TopTayangan calls GET /api/tayangan/top and returns the ten most viewed
// shows of the week. Listing endpoints are public; no credential is
// attached.
func (c *Client) TopTayangan(ctx context.Context) ([]models.Tayangan, error) {
	return c.listTayangan(ctx, "/api/tayangan/top")
}

// Films calls GET /api/tayangan/film.
func (c *Client) Films(ctx context.Context) ([]models.Tayangan, error) {
	return c.listTayangan(ctx, "/api/tayangan/film")
}

// Series calls GET /api/tayangan/series.
func (c *Client) Series(ctx context.Context) ([]models.Tayangan, error) {
	return c.listTayangan(ctx, "/api/tayangan/series")
}

// SearchTayangan calls GET /api/tayangan/search with the given title
// query.
func (c *Client) SearchTayangan(ctx context.Context, judul string) ([]models.Tayangan, error) {
	if judul == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}
	return c.listTayangan(ctx, "/api/tayangan/search?judul="+url.QueryEscape(judul))
}

func (c *Client) listTayangan(ctx context.Context, path string) ([]models.Tayangan, error) {
	payload, err := c.Send(ctx, Envelope{Path: path})
	if err != nil {
		return nil, err
	}

	var items []models.Tayangan
	if err := json.Unmarshal(payload.Data, &items); err != nil {
		return nil, fmt.Errorf("%w: failed to parse tayangan list: %v", shared.ErrBadResponse, err)
	}

	return items, nil
}
