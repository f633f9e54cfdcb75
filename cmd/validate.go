package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/methuselah/internal/validator"
)

var validateDB string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Validate a deck list or structured export",
	Long: `Validate parses a deck and reports every problem found in it.

Errors are lines that cannot be parsed, export entries that do not resolve
against the card database, unreadable sources and decks without any card.
Warnings cover unknown type tags (counted as Action), zero quantities and
cards listed with inconsistent types.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := resolveDeckArg(args)
		if deckPath == "" {
			return fmt.Errorf("no deck given and no default deck configured")
		}

		opts, closeDB, err := loaderOptions(databasePath(validateDB))
		if err != nil {
			return err
		}
		defer closeDB()

		v := validator.NewValidator(deckPath, opts...)
		results, err := v.Validate(cmd.Context())
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintln(out, colorize.GreenString("✅ Deck '%s' is valid.", deckPath))
		} else {
			fmt.Fprintln(out, colorize.RedString("❌ Deck '%s' has %d validation errors:", deckPath, len(results.Errors)))
			for i, e := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, e)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, colorize.YellowString("\nWarnings:"))
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateDB, "db", "", "Card database used to resolve structured exports")
}
