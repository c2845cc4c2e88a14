package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/nobarhq/nobarctl/internal/models"
)

var (
	_ list.Item = favoriteItem{}
	_ list.Item = tayanganItem{}
)

// favoriteItem wraps [models.Favorite] to implement [list.Item].
type favoriteItem struct {
	favorite models.Favorite
}

func (i favoriteItem) FilterValue() string { return i.favorite.Judul }
func (i favoriteItem) Title() string       { return i.favorite.Judul }
func (i favoriteItem) Description() string {
	if t, err := i.favorite.AddedAt(); err == nil {
		return fmt.Sprintf("added %s", t.Format("2 Jan 2006 15:04"))
	}
	return fmt.Sprintf("added %s", i.favorite.Timestamp)
}

// tayanganItem wraps [models.Tayangan] to implement [list.Item].
type tayanganItem struct {
	tayangan models.Tayangan
}

func (i tayanganItem) FilterValue() string { return i.tayangan.Judul }
func (i tayanganItem) Title() string       { return i.tayangan.Judul }
func (i tayanganItem) Description() string {
	desc := i.tayangan.Sinopsis
	if desc == "" {
		desc = i.tayangan.ReleaseDate
	}
	if i.tayangan.TotalView > 0 {
		desc = fmt.Sprintf("%d views • %s", i.tayangan.TotalView, desc)
	}
	return desc
}
