package cmd

import (
	"fmt"
	"strconv"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/methuselah/internal/deck"
)

var cardsDB string

// cardsCmd represents the cards command group
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the local card database",
	Long: `Commands for the card database used to resolve structured deck exports.
The database lives at XDG_DATA_HOME/methuselah/cards.db unless card_db is set
in the config file or --db is given.`,
}

var cardsImportCmd = &cobra.Command{
	Use:   "import [file|url]",
	Short: "Import a JSON card catalogue",
	Long: `Import loads a JSON array of cards ({"id", "name", "types", "url"}) from a
file or http(s) URL into the card database. Existing ids are updated.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := deck.NewAutoSource().Open(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error opening catalogue: %w", err)
		}
		defer rc.Close()

		store, err := openStore(databasePath(cardsDB))
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Import(cmd.Context(), rc)
		if err != nil {
			return err
		}

		total, err := store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards (%d in database)\n", n, total)
		return nil
	},
}

var cardsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Look up a card by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid card id %q", args[0])
		}

		store, err := openStore(databasePath(cardsDB))
		if err != nil {
			return err
		}
		defer store.Close()

		c, err := store.ResolveCardByID(cmd.Context(), id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, colorize.CyanString("Card:  ")+colorize.HiWhiteString("%s", c.Name()))
		fmt.Fprintln(out, colorize.CyanString("ID:    ")+colorize.HiWhiteString("%d", id))
		fmt.Fprintln(out, colorize.CyanString("Type:  ")+colorize.HiWhiteString("%s", c.TypeString()))
		fmt.Fprintln(out, colorize.CyanString("Zone:  ")+colorize.HiWhiteString("%s", deck.ZoneOf(c)))
		fmt.Fprintln(out, colorize.CyanString("Image: ")+colorize.HiWhiteString("%s", c.ImageURL()))
		return nil
	},
}

var cardsSearchCmd = &cobra.Command{
	Use:   "search [name]",
	Short: "Find cards whose name contains the given text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(databasePath(cardsDB))
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.SearchByName(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintf(out, "No cards matching %q\n", args[0])
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "%8d  %s\n", r.ID, r.Card)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cardsCmd)
	cardsCmd.PersistentFlags().StringVar(&cardsDB, "db", "", "Card database path")
	cardsCmd.AddCommand(cardsImportCmd)
	cardsCmd.AddCommand(cardsGetCmd)
	cardsCmd.AddCommand(cardsSearchCmd)
}
