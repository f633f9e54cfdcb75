package validator

import (
	"context"
	"errors"
	"fmt"

	"github.com/arcanaland/methuselah/internal/card"
	"github.com/arcanaland/methuselah/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (r ValidationResults) Valid() bool { return len(r.Errors) == 0 }

type Validator struct {
	DeckPath string
	Results  ValidationResults
	loader   *deck.Loader
}

// NewValidator returns a validator for the deck at deckPath (a file or
// URL). The options configure the underlying loader, typically a resolver
// for structured exports.
func NewValidator(deckPath string, opts ...deck.Option) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
		loader:   deck.NewLoader(opts...),
	}
}

// Validate parses the deck and collects findings. The returned error is
// non-nil only when ctx is done.
func (v *Validator) Validate(ctx context.Context) (ValidationResults, error) {
	v.Results = ValidationResults{}

	report, cards, _, err := v.loader.Parse(ctx, v.DeckPath)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return v.Results, ctxErr
	}

	switch {
	case errors.Is(err, deck.ErrSourceUnavailable):
		v.addError("%v", err)
	case errors.Is(err, deck.ErrEmptyResult):
		v.addError("deck yields no cards")
	case err != nil:
		v.addError("%v", err)
	}

	if report != nil {
		v.validateReport(report)
	}
	v.validateCards(cards)

	return v.Results, nil
}

func (v *Validator) validateReport(report *deck.ParseReport) {
	for _, skipped := range report.Skipped {
		v.addError("%v", skipped)
	}
	for _, unresolved := range report.Unresolved {
		v.addError("%v", unresolved)
	}

	for _, line := range report.Lines {
		if !line.KnownTag {
			v.addWarning("line %d: unknown type tag '%s' for %s, counted as Action", line.Number, line.Tag, line.Name)
		}
		if line.Quantity == 0 {
			v.addWarning("line %d: %s has quantity 0", line.Number, line.Name)
		}
	}
}

// validateCards checks the produced cards for inconsistent or ambiguous
// types. Each name is reported once.
func (v *Validator) validateCards(cards []card.Card) {
	seen := make(map[string]card.Type)
	conflicted := make(map[string]bool)
	mixedCrypt := make(map[string]bool)

	for _, c := range cards {
		t := c.Type()
		if t.Has(card.Crypt) && t != card.Crypt && !mixedCrypt[c.Name()] {
			mixedCrypt[c.Name()] = true
			v.addWarning("%s combines Crypt with other types (%s) and is counted as library", c.Name(), t)
		}

		prev, ok := seen[c.Name()]
		if !ok {
			seen[c.Name()] = t
			continue
		}
		if prev != t && !conflicted[c.Name()] {
			conflicted[c.Name()] = true
			v.addWarning("%s appears with different types: %s and %s", c.Name(), prev, t)
		}
	}
}

func (v *Validator) addError(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) addWarning(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}
