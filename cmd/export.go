package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/deck"
)

var (
	exportOutput string
	exportDB     string
)

var exportCmd = &cobra.Command{
	Use:   "export [deck]",
	Short: "Write a deck as a text deck list",
	Long: `Export loads a deck (text or structured export) and writes it back as a
text deck list, grouped by crypt and library. The output can be read again by
any methuselah command.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, closeDB, err := loaderOptions(databasePath(exportDB))
		if err != nil {
			return err
		}
		defer closeDB()

		d := deck.New()
		result := deck.NewLoader(opts...).Load(cmd.Context(), d, resolveDeckArg(args))
		if result.Reason != nil {
			return fmt.Errorf("error loading deck: %w", result.Reason)
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			file, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("error creating output file: %w", err)
			}
			defer file.Close()
			w = file
		}

		if err := deck.WriteText(w, d); err != nil {
			return fmt.Errorf("error writing deck: %w", err)
		}

		if exportOutput != "" {
			logger.Info("Exported deck", zap.String("output", exportOutput), zap.Int("cards", d.Len()))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().StringVar(&exportDB, "db", "", "Card database used to resolve structured exports")
}
