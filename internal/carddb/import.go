package carddb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/card"
)

// CatalogueEntry is one card of a KRCG-style JSON catalogue.
type CatalogueEntry struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
	URL   string   `json:"url"`
}

// CatalogueType maps catalogue type labels onto a card type. Vampire and
// Imbued are crypt cards; everything else goes through card.ParseType and
// the results are unioned.
func CatalogueType(types []string) card.Type {
	var t card.Type
	for _, label := range types {
		switch strings.ToLower(strings.TrimSpace(label)) {
		case "vampire", "imbued", "crypt":
			t |= card.Crypt
		default:
			t |= card.ParseType(label)
		}
	}
	return t
}

// Card converts the entry into a card. A missing URL falls back to the
// generated image URL.
func (e CatalogueEntry) Card() card.Card {
	t := CatalogueType(e.Types)
	if e.URL == "" {
		return card.New(e.Name, t)
	}
	return card.NewWithImage(e.Name, t, e.URL)
}

// Import reads a JSON array of catalogue entries and upserts every entry
// in a single transaction. It returns the number of imported cards.
func (s *Store) Import(ctx context.Context, r io.Reader) (int, error) {
	var entries []CatalogueEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return 0, fmt.Errorf("decode catalogue: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	imported := 0
	for _, e := range entries {
		if e.ID <= 0 || strings.TrimSpace(e.Name) == "" {
			s.logger.Warn("Skipping catalogue entry",
				zap.Int("id", e.ID),
				zap.String("name", e.Name),
			)
			continue
		}
		if err := saveCard(ctx, tx, e.ID, e.Card()); err != nil {
			return 0, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	s.logger.Info("Imported card catalogue", zap.Int("cards", imported))
	return imported, nil
}
