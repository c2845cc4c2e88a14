// package formatter exports the favorites list to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nobarhq/nobarctl/internal/models"
	"github.com/nobarhq/nobarctl/internal/shared"
)

// ExportToCSV converts a favorites list to CSV with columns: Timestamp, Username, Judul
func ExportToCSV(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Timestamp", "Username", "Judul"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, fav := range favorites {
		canon, err := models.CanonicalTimestamp(fav.Timestamp)
		if err != nil {
			canon = fav.Timestamp
		}
		if err := writer.Write([]string{canon, fav.Username, fav.Judul}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a favorites list to a Markdown table.
func ExportToMarkdown(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Daftar Favorit\n\n")
	buf.WriteString(fmt.Sprintf("%d favorites\n\n", len(favorites)))
	buf.WriteString("| Judul | Time added |\n")
	buf.WriteString("|-------|------------|\n")

	for _, fav := range favorites {
		added := fav.Timestamp
		if t, err := fav.AddedAt(); err == nil {
			added = t.Format("2006-01-02 15:04")
		}
		buf.WriteString(fmt.Sprintf("| %s | %s |\n", fav.Judul, added))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a favorites list to a plain text listing.
func ExportToText(favorites []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("Daftar Favorit\n")
	buf.WriteString("==============\n\n")

	if len(favorites) == 0 {
		buf.WriteString("No favorites added.\n")
		return buf.Bytes(), nil
	}

	for i, fav := range favorites {
		added := fav.Timestamp
		if t, err := fav.AddedAt(); err == nil {
			added = t.Format("2006-01-02 15:04")
		}
		buf.WriteString(fmt.Sprintf("%d. %s (added %s)\n", i+1, fav.Judul, added))
	}

	return buf.Bytes(), nil
}

// Export converts a favorites list to the named format: csv, markdown
// (md), or txt.
func Export(favorites []models.Favorite, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(favorites)
	case "markdown", "md":
		return ExportToMarkdown(favorites)
	case "txt", "text":
		return ExportToText(favorites)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteToFile writes exported data to path, creating parent directories.
func WriteToFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}
