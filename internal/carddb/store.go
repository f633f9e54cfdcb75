// Package carddb is a local SQLite card database. It resolves the numeric
// card ids used by structured deck exports.
package carddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/arcanaland/methuselah/internal/card"
	"github.com/arcanaland/methuselah/internal/deck"
)

// Store wraps the SQLite connection.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Record is a card together with its database id.
type Record struct {
	ID   int
	Card card.Card
}

// Open opens (or creates) the database at path and applies pending
// migrations.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	if err := migrateUp(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	logger.Debug("Opened card database", zap.String("path", path))
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

// SaveCard inserts or updates the card stored under id.
func (s *Store) SaveCard(ctx context.Context, id int, c card.Card) error {
	return saveCard(ctx, s.db, id, c)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveCard(ctx context.Context, db execer, id int, c card.Card) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO cards (id, name, types, image_url, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			types = excluded.types,
			image_url = excluded.image_url,
			updated_at = CURRENT_TIMESTAMP`,
		id, c.Name(), int(c.Type()), c.ImageURL(),
	)
	if err != nil {
		return fmt.Errorf("save card %d: %w", id, err)
	}
	return nil
}

// ResolveCardByID implements deck.Resolver. Unknown ids wrap
// deck.ErrCardNotFound.
func (s *Store) ResolveCardByID(ctx context.Context, id int) (card.Card, error) {
	var (
		name, imageURL string
		types          int
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT name, types, image_url FROM cards WHERE id = ?`, id,
	).Scan(&name, &types, &imageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Card{}, fmt.Errorf("card %d: %w", id, deck.ErrCardNotFound)
	}
	if err != nil {
		return card.Card{}, fmt.Errorf("get card %d: %w", id, err)
	}
	return card.NewWithImage(name, card.Type(types), imageURL), nil
}

// SearchByName returns cards whose name contains q, ordered by name.
func (s *Store) SearchByName(ctx context.Context, q string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, types, image_url FROM cards WHERE name LIKE ? ORDER BY name COLLATE NOCASE, id`,
		"%"+q+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			id, types      int
			name, imageURL string
		)
		if err := rows.Scan(&id, &name, &types, &imageURL); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		records = append(records, Record{ID: id, Card: card.NewWithImage(name, card.Type(types), imageURL)})
	}
	return records, rows.Err()
}

// Count returns the number of stored cards.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cards`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

var _ deck.Resolver = (*Store)(nil)
