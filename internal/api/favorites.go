package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
)

const favoritesPath = "/api/favorites/"

// ListFavorites calls GET /api/favorites/ and returns the user's
// favorites in backend order.
func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	payload, err := c.Send(ctx, Envelope{
		Path:       favoritesPath,
		Authorized: true,
	})
	if err != nil {
		return nil, err
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(payload.Data, &favorites); err != nil {
		return nil, fmt.Errorf("%w: failed to parse favorites: %v", shared.ErrBadResponse, err)
	}

	return favorites, nil
}

// DeleteFavorite calls DELETE /api/favorites/ keyed by the canonical form
// of timestamp and returns the updated favorites list together with the
// backend's confirmation message.
func (c *Client) DeleteFavorite(ctx context.Context, timestamp string) ([]models.Favorite, string, error) {
	canon, err := models.CanonicalTimestamp(timestamp)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	body, err := json.Marshal(models.DeleteFavoriteRequest{Timestamp: canon})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal delete request: %w", err)
	}

	payload, err := c.Send(ctx, Envelope{
		Path:       favoritesPath,
		Method:     http.MethodDelete,
		Body:       body,
		Authorized: true,
	})
	if err != nil {
		return nil, "", err
	}

	var favorites []models.Favorite
	if err := json.Unmarshal(payload.Data, &favorites); err != nil {
		return nil, "", fmt.Errorf("%w: failed to parse favorites: %v", shared.ErrBadResponse, err)
	}

	return favorites, payload.Message, nil
}
