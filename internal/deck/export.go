package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/card"
)

// Format identifies how a deck source is encoded.
type Format string

const (
	FormatText   Format = "text"   // Free-form deck list
	FormatExport Format = "export" // Structured JSON export (name/author/crypt/library)
)

// DetectFormat picks FormatExport for a JSON object and FormatText for
// anything else.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	if len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed) {
		return FormatExport
	}
	return FormatText
}

// Export is the structured deck export document.
type Export struct {
	Name        string        `json:"name"`
	Author      string        `json:"author"`
	Description string        `json:"description"`
	Crypt       []ExportEntry `json:"crypt"`
	Library     []ExportEntry `json:"library"`
}

// ExportEntry references a card by database id.
type ExportEntry struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}

// Resolver maps a card database id to the card it denotes. Implementations
// return ErrCardNotFound for unknown ids.
type Resolver interface {
	ResolveCardByID(ctx context.Context, id int) (card.Card, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(ctx context.Context, id int) (card.Card, error)

func (f ResolverFunc) ResolveCardByID(ctx context.Context, id int) (card.Card, error) {
	return f(ctx, id)
}

var errNoResolver = errors.New("no card resolver configured")

// ParseExport decodes a structured export and resolves every entry through
// resolver, appending Count copies per entry. Entries that cannot be
// resolved contribute nothing and are recorded in the report. The error is
// non-nil only when the document itself cannot be read or decoded.
func ParseExport(ctx context.Context, r io.Reader, resolver Resolver, logger *zap.Logger) (*ParseReport, []card.Card, Info, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var doc Export
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, Info{}, fmt.Errorf("decode deck export: %w", err)
	}

	info := Info{Name: doc.Name, Author: doc.Author, Description: doc.Description}
	logger.Debug("Decoded deck export",
		zap.String("name", info.Name),
		zap.String("author", info.Author),
		zap.Int("crypt_entries", len(doc.Crypt)),
		zap.Int("library_entries", len(doc.Library)))

	report := &ParseReport{Format: FormatExport}
	var cards []card.Card

	sections := []struct {
		name    string
		entries []ExportEntry
	}{
		{ZoneCrypt.String(), doc.Crypt},
		{ZoneLibrary.String(), doc.Library},
	}
	for _, section := range sections {
		for i, entry := range section.entries {
			if err := ctx.Err(); err != nil {
				return report, nil, info, err
			}

			c, err := resolveEntry(ctx, resolver, entry)
			if err != nil {
				entryErr := &EntryError{Section: section.name, Index: i, ID: entry.ID, Count: entry.Count, Err: err}
				report.Unresolved = append(report.Unresolved, entryErr)
				logger.Warn("Skipping deck export entry",
					zap.String("section", section.name),
					zap.Int("id", entry.ID),
					zap.Int("count", entry.Count),
					zap.Error(err))
				continue
			}
			for n := 0; n < entry.Count; n++ {
				cards = append(cards, c)
			}
		}
	}

	report.Cards = len(cards)
	return report, cards, info, nil
}

func resolveEntry(ctx context.Context, resolver Resolver, entry ExportEntry) (card.Card, error) {
	if resolver == nil {
		return card.Card{}, errNoResolver
	}
	if entry.Count < 0 || entry.Count > MaxQuantity {
		return card.Card{}, fmt.Errorf("invalid count %d", entry.Count)
	}
	return resolver.ResolveCardByID(ctx, entry.ID)
}
