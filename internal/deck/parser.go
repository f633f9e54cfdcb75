package deck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/arcanaland/methuselah/internal/card"
)

// MaxQuantity bounds the copy count accepted on a single line.
const MaxQuantity = 999

// MaxLineLength is the longest line ParseText tries to match. Longer lines
// are skipped like any other unparseable line.
const MaxLineLength = 64 << 10

// skippedTextLimit bounds the line text kept in a LineError.
const skippedTextLimit = 120

// Line grammars, tried in order. The type tag in brackets is mandatory.
//
//	4x Howler [Crypt]
//	4 Howler [Crypt]
//	Howler [Crypt] x4
//	Howler [Crypt]
var (
	quantityPrefixed = regexp.MustCompile(`^(\d+)x?\s+(.+?)\s*\[([^\]]*)\]$`)
	quantitySuffixed = regexp.MustCompile(`^(.+?)\s*\[([^\]]*)\]\s*x(\d+)$`)
	unquantified     = regexp.MustCompile(`^(.+?)\s*\[([^\]]*)\]$`)
	inlineComment    = regexp.MustCompile(`\s+//.*$`)
)

// tagKeywords maps lower-case substrings of a free-form type tag to a
// category. First match wins.
var tagKeywords = []struct {
	keyword string
	kind    card.Type
}{
	{"crypt", card.Crypt},
	{"vampire", card.Crypt},
	{"master", card.Master},
	{"modifier", card.ActionModifier},
	{"action", card.Action},
	{"ally", card.Ally},
	{"reaction", card.Reaction},
	{"combat", card.Combat},
	{"retainer", card.Retainer},
	{"equipment", card.Equipment},
	{"event", card.Event},
	{"political", card.PoliticalAction},
	{"power", card.Power},
	{"conviction", card.Conviction},
}

// Line is one parsed deck-list line.
type Line struct {
	Number   int       // 1-based line number, 0 when parsed standalone
	Quantity int       // Copies
	Name     string    // Card name
	Tag      string    // Raw text inside the brackets
	Type     card.Type // Decoded tag
	KnownTag bool      // False when the tag fell back to Action
}

// Cards expands the line into Quantity identical cards.
func (l Line) Cards() []card.Card {
	cards := make([]card.Card, 0, l.Quantity)
	c := card.New(l.Name, l.Type)
	for i := 0; i < l.Quantity; i++ {
		cards = append(cards, c)
	}
	return cards
}

// IsIgnorable reports whether a trimmed line is blank or a comment.
func IsIgnorable(line string) bool {
	return line == "" ||
		strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "//") ||
		strings.HasPrefix(line, ";")
}

// ParseLine parses a single deck-list line. Blank and comment lines return
// ErrIgnoredLine; lines matching no grammar return ErrUnparseableLine.
func ParseLine(raw string) (Line, error) {
	line := strings.TrimSpace(raw)
	if IsIgnorable(line) {
		return Line{}, ErrIgnoredLine
	}
	line = strings.TrimSpace(inlineComment.ReplaceAllString(line, ""))

	var qty, name, tag string
	if m := quantityPrefixed.FindStringSubmatch(line); m != nil {
		qty, name, tag = m[1], m[2], m[3]
	} else if m := quantitySuffixed.FindStringSubmatch(line); m != nil {
		name, tag, qty = m[1], m[2], m[3]
	} else if m := unquantified.FindStringSubmatch(line); m != nil {
		name, tag, qty = m[1], m[2], "1"
	} else {
		return Line{}, ErrUnparseableLine
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Line{}, fmt.Errorf("%w: missing card name", ErrUnparseableLine)
	}

	quantity, err := strconv.Atoi(qty)
	if err != nil || quantity > MaxQuantity {
		return Line{}, fmt.Errorf("%w: invalid quantity '%s'", ErrUnparseableLine, qty)
	}

	t, known := ParseTag(tag)
	return Line{
		Quantity: quantity,
		Name:     name,
		Tag:      tag,
		Type:     t,
		KnownTag: known,
	}, nil
}

// ParseTag decodes the bracketed type tag of a deck-list line. Each "/"
// segment is matched against the canonical labels, then by keyword.
// Segments matching nothing decode to Action and known is false.
//
// This is deliberately not card.ParseType, which defaults to Token.
func ParseTag(text string) (t card.Type, known bool) {
	known = true
	for _, seg := range strings.Split(text, "/") {
		st, ok := parseTagSegment(seg)
		t |= st
		known = known && ok
	}
	return t, known
}

func parseTagSegment(seg string) (card.Type, bool) {
	seg = strings.TrimSpace(seg)
	for _, c := range card.All() {
		if label, _ := card.Label(c); strings.EqualFold(seg, label) {
			return c, true
		}
	}

	lower := strings.ToLower(seg)
	for _, kw := range tagKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.kind, true
		}
	}
	return card.Action, false
}

// ParseReport describes what a parse produced and what it skipped.
type ParseReport struct {
	Format     Format
	Lines      []Line        // Parsed text lines
	Skipped    []*LineError  // Text lines matching no grammar
	Unresolved []*EntryError // Structured entries that produced no cards
	Cards      int           // Total cards produced
}

// Empty reports whether the parse produced no cards.
func (r *ParseReport) Empty() bool { return r.Cards == 0 }

// ParseText parses a free-form deck list. Unparseable lines are logged,
// recorded and skipped. The error is only non-nil when reading r fails.
func ParseText(r io.Reader, logger *zap.Logger) (*ParseReport, []card.Card, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &ParseReport{Format: FormatText}
	var cards []card.Card

	reader := bufio.NewReader(r)
	number := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return report, nil, fmt.Errorf("read deck list: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}

		number++
		text := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if number == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}

		var (
			line Line
			err  error
		)
		if len(text) > MaxLineLength {
			err = fmt.Errorf("%w: line exceeds %d bytes", ErrUnparseableLine, MaxLineLength)
		} else {
			line, err = ParseLine(text)
		}
		switch {
		case errors.Is(err, ErrIgnoredLine):
		case err != nil:
			lineErr := &LineError{Number: number, Text: shorten(strings.TrimSpace(text)), Err: err}
			report.Skipped = append(report.Skipped, lineErr)
			logger.Warn("Skipping deck line",
				zap.Int("line", number),
				zap.String("text", lineErr.Text),
				zap.Error(err))
		default:
			line.Number = number
			report.Lines = append(report.Lines, line)
			cards = append(cards, line.Cards()...)
		}

		if readErr == io.EOF {
			break
		}
	}

	report.Cards = len(cards)
	logger.Debug("Parsed deck list",
		zap.Int("lines", number),
		zap.Int("cards", len(cards)),
		zap.Int("skipped", len(report.Skipped)))
	return report, cards, nil
}

func shorten(text string) string {
	if len(text) <= skippedTextLimit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= skippedTextLimit {
		return text
	}
	return string(runes[:skippedTextLimit]) + "…"
}
