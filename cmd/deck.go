package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arcanaland/methuselah/internal/config"
	"github.com/arcanaland/methuselah/internal/deck"
)

// sampleDeckFile is written into a fresh deck library by 'deck init'.
const sampleDeckFile = "sample.txt"

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks in your deck library",
	Long:  `Commands for managing the deck lists in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Deck library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'methuselah deck init' to create it.")
			return nil
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		defaultDeck := ""
		if cfg != nil {
			defaultDeck = cfg.DefaultDeck
		}

		opts, closeDB, err := loaderOptions(databasePath(""))
		if err != nil {
			return err
		}
		defer closeDB()

		loader := deck.NewLoader(opts...)
		found := 0
		for _, entry := range entries {
			entryPath := filepath.Join(libraryPath, entry.Name())
			fileInfo, err := os.Stat(entryPath)
			if err != nil {
				fmt.Fprintf(out, "Error resolving entry %s: %v\n", entry.Name(), err)
				continue
			}
			if fileInfo.IsDir() {
				continue
			}

			report, cards, info, err := loader.Parse(cmd.Context(), entryPath)
			if err != nil {
				// Not a deck, skip
				continue
			}
			found++

			name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
			title := info.Name
			if title == "" {
				title = string(report.Format)
			}

			marker, suffix := " ", ""
			if name == defaultDeck || entry.Name() == defaultDeck {
				marker, suffix = "*", " [DEFAULT]"
			}
			fmt.Fprintf(out, "%s %s (%s, %d cards)%s\n", marker, name, title, len(cards), suffix)
		}

		if found == 0 {
			fmt.Fprintln(out, "No decks found in your deck library.")
			fmt.Fprintln(out, "You can add decks by copying them to:", libraryPath)
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		opts, closeDB, err := loaderOptions(databasePath(""))
		if err != nil {
			return err
		}
		defer closeDB()

		// Make sure the deck actually yields cards
		if _, _, _, err := deck.NewLoader(opts...).Parse(cmd.Context(), deckPath); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)

		samplePath := filepath.Join(libraryPath, sampleDeckFile)
		if _, err := os.Stat(samplePath); os.IsNotExist(err) {
			if err := writeSampleDeck(samplePath); err != nil {
				return err
			}
			fmt.Fprintln(out, "Sample deck written to:", samplePath)
		}

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func writeSampleDeck(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating sample deck: %w", err)
	}
	defer file.Close()

	if err := deck.WriteText(file, deck.NewSample()); err != nil {
		return fmt.Errorf("error writing sample deck: %w", err)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
