package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/carddb"
	"github.com/arcanaland/methuselah/internal/config"
	"github.com/arcanaland/methuselah/internal/deck"
)

// resolveDeckArg returns the deck identifier named by args, or the
// configured default deck. Names missing from the deck library are
// returned unchanged so that loading reports them. An empty result selects
// the sample deck.
func resolveDeckArg(args []string) string {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else if cfg != nil {
		name = cfg.DefaultDeck
	}
	if name == "" {
		return ""
	}

	path, err := config.GetDeckPath(name)
	if err != nil {
		logger.Debug("Deck not found in library", zap.String("deck", name), zap.Error(err))
		return name
	}
	return path
}

// databasePath returns the --db flag value or the configured database.
func databasePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil {
		return cfg.DatabasePath()
	}
	return config.GetCardDBPath()
}

// openStore opens the card database at path.
func openStore(path string) (*carddb.Store, error) {
	store, err := carddb.Open(path, logger)
	if err != nil {
		return nil, fmt.Errorf("error opening card database: %w", err)
	}
	return store, nil
}

// loaderOptions returns the deck loader options. The card database is
// attached as resolver when it exists, so that structured exports can be
// loaded. The returned function releases the database.
func loaderOptions(dbPath string) ([]deck.Option, func(), error) {
	opts := []deck.Option{deck.WithLogger(logger)}
	closeFn := func() {}

	if _, err := os.Stat(dbPath); err != nil {
		logger.Debug("No card database, structured exports cannot be resolved", zap.String("path", dbPath))
		return opts, closeFn, nil
	}

	store, err := openStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, deck.WithResolver(store))
	return opts, func() { store.Close() }, nil
}
