package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/methuselah/internal/deck"
)

var (
	showZone string
	showJSON bool
	showDB   string
)

var showCmd = &cobra.Command{
	Use:   "show [deck]",
	Short: "Display a deck grouped by crypt and library",
	Long: `Show loads a deck and displays its summary and card lists.

The deck may be a name from your deck library (XDG_DATA_HOME/methuselah/decks),
a path or an http(s) URL. Text deck lists and structured JSON exports are both
accepted. If no deck is given the default deck from your config is used, and
when nothing can be loaded the sample deck is shown.

Examples:
  methuselah show
  methuselah show howlers
  methuselah show --zone crypt ./decks/howlers.txt
  methuselah show --json https://example.com/deck.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zones := []deck.Zone{deck.ZoneCrypt, deck.ZoneLibrary}
		if showZone != "" {
			z, err := deck.ParseZone(showZone)
			if err != nil {
				return err
			}
			zones = []deck.Zone{z}
		}

		opts, closeDB, err := loaderOptions(databasePath(showDB))
		if err != nil {
			return err
		}
		defer closeDB()

		d := deck.New()
		result := deck.NewLoader(opts...).Load(cmd.Context(), d, resolveDeckArg(args))

		if showJSON {
			return writeDeckJSON(cmd.OutOrStdout(), d, result, zones)
		}

		displayDeck(cmd.OutOrStdout(), d, result, zones)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showZone, "zone", "z", "", "Only show one zone (crypt or library)")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the deck as JSON")
	showCmd.Flags().StringVar(&showDB, "db", "", "Card database used to resolve structured exports")
}

type deckJSON struct {
	Info     deck.Info    `json:"info"`
	Source   string       `json:"source,omitempty"`
	Fallback bool         `json:"fallback"`
	Reason   string       `json:"reason,omitempty"`
	Total    int          `json:"total"`
	Types    []string     `json:"types"`
	Crypt    []deck.Entry `json:"crypt,omitempty"`
	Library  []deck.Entry `json:"library,omitempty"`
}

func writeDeckJSON(w io.Writer, d *deck.Deck, result *deck.LoadResult, zones []deck.Zone) error {
	out := deckJSON{
		Info:     d.Info(),
		Source:   result.Source,
		Fallback: result.Fallback,
		Total:    d.Len(),
		Types:    d.CardTypes(),
	}
	if result.Reason != nil {
		out.Reason = result.Reason.Error()
	}
	for _, z := range zones {
		switch z {
		case deck.ZoneCrypt:
			out.Crypt = d.CryptCards()
		case deck.ZoneLibrary:
			out.Library = d.LibraryCards()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// terminalWidth returns the width of stdout, or 80 when it is not a terminal.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}

// displayDeck prints the deck summary followed by one table per zone
func displayDeck(w io.Writer, d *deck.Deck, result *deck.LoadResult, zones []deck.Zone) {
	width := terminalWidth()
	info := d.Info()
	label := func(s string) string { return colorize.CyanString("%-9s", s) }
	value := colorize.HiWhiteString

	fmt.Fprintln(w)
	if info.Name != "" {
		fmt.Fprintln(w, "  "+label("Deck:")+value("%s", info.Name))
	}
	if info.Author != "" {
		fmt.Fprintln(w, "  "+label("Author:")+value("%s", info.Author))
	}
	if result.Fallback {
		source := "none given"
		if result.Source != "" {
			source = result.Source
		}
		fmt.Fprintln(w, "  "+label("Source:")+colorize.YellowString("%s (showing sample deck)", source))
		if result.Reason != nil {
			fmt.Fprintln(w, "  "+label("")+colorize.YellowString("%v", result.Reason))
		}
	} else {
		fmt.Fprintln(w, "  "+label("Source:")+value("%s", result.Source))
	}
	fmt.Fprintln(w, "  "+label("Cards:")+value("%d (crypt %d, library %d)", d.Len(), d.CryptSize(), d.LibrarySize()))

	textWidth := width - 13
	for i, line := range wrapText(strings.Join(d.CardTypes(), ", "), textWidth) {
		prefix := label("")
		if i == 0 {
			prefix = label("Types:")
		}
		fmt.Fprintln(w, "  "+prefix+value("%s", line))
	}

	if info.Description != "" {
		fmt.Fprintln(w)
		for _, line := range wrapText(info.Description, textWidth) {
			fmt.Fprintln(w, "  "+line)
		}
	}

	if result.Report != nil && len(result.Report.Skipped)+len(result.Report.Unresolved) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+colorize.YellowString("%d entries skipped, run 'methuselah validate' for details",
			len(result.Report.Skipped)+len(result.Report.Unresolved)))
	}

	for _, z := range zones {
		var entries []deck.Entry
		var size int
		switch z {
		case deck.ZoneCrypt:
			entries, size = d.CryptCards(), d.CryptSize()
		case deck.ZoneLibrary:
			entries, size = d.LibraryCards(), d.LibrarySize()
		}
		displayZone(w, z, entries, size, width)
	}

	fmt.Fprintln(w)
}

func displayZone(w io.Writer, z deck.Zone, entries []deck.Entry, size, width int) {
	nameWidth := 0
	for _, e := range entries {
		nameWidth = max(nameWidth, utf8.RuneCountInString(e.Name))
	}
	// keep the type column on screen
	nameWidth = min(nameWidth, max(width-30, 20))

	fmt.Fprintln(w)
	title := strings.ToUpper(z.String()[:1]) + z.String()[1:]
	fmt.Fprintln(w, "  "+colorize.New(colorize.Bold, colorize.FgHiMagenta).Sprintf("%s (%d)", title, size))

	if len(entries) == 0 {
		fmt.Fprintln(w, "    "+colorize.HiBlackString("(empty)"))
		return
	}

	for _, e := range entries {
		name := truncateName(e.Name, nameWidth)
		padding := strings.Repeat(" ", nameWidth-utf8.RuneCountInString(name))
		fmt.Fprintf(w, "    %s %s%s  %s\n",
			colorize.HiWhiteString("%3dx", e.Quantity),
			name, padding,
			colorize.CyanString("%s", e.Type))
	}
}

// truncateName shortens name to width runes, marking the cut with an ellipsis.
func truncateName(name string, width int) string {
	runes := []rune(name)
	if len(runes) <= width {
		return name
	}
	return string(runes[:width-1]) + "…"
}
