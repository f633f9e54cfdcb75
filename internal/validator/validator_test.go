package validator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/methuselah/internal/card"
	"github.com/arcanaland/methuselah/internal/deck"
)

func writeDeck(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate_CleanDeck(t *testing.T) {
	path := writeDeck(t, "clean.txt", "4x Howler [Crypt]\n2 Abbot [Action]\nSwiftness of the Stag [Modifier/Combat] x3\n")

	results, err := NewValidator(path).Validate(context.Background())
	require.NoError(t, err)
	assert.True(t, results.Valid())
	assert.Empty(t, results.Warnings)
}

func TestValidate_Findings(t *testing.T) {
	content := "4x Howler [Crypt]\n" +
		"this is not a card\n" +
		"2 Abbot [Mystery]\n" +
		"0 Deflection [Reaction]\n" +
		"1 Howler [Ally]\n" +
		"1 Odd Card [Crypt/Master]\n"
	path := writeDeck(t, "messy.txt", content)

	results, err := NewValidator(path).Validate(context.Background())
	require.NoError(t, err)

	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "line 2")

	require.Len(t, results.Warnings, 4)
	assert.Contains(t, results.Warnings[0], "unknown type tag 'Mystery'")
	assert.Contains(t, results.Warnings[1], "quantity 0")
	assert.Contains(t, results.Warnings[2], "Howler appears with different types")
	assert.Contains(t, results.Warnings[3], "Odd Card combines Crypt")
}

func TestValidate_Unreadable(t *testing.T) {
	results, err := NewValidator(filepath.Join(t.TempDir(), "missing.txt")).Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], deck.ErrSourceUnavailable.Error())
}

func TestValidate_Empty(t *testing.T) {
	path := writeDeck(t, "empty.txt", "# only a comment\n\n")

	results, err := NewValidator(path).Validate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"deck yields no cards"}, results.Errors)
}

func TestValidate_ExportWithResolver(t *testing.T) {
	path := writeDeck(t, "deck.json", `{"name": "x", "crypt": [{"id": 1, "count": 2}], "library": [{"id": 5, "count": 1}]}`)
	resolver := deck.ResolverFunc(func(_ context.Context, id int) (card.Card, error) {
		if id == 1 {
			return card.New("Howler", card.Crypt), nil
		}
		return card.Card{}, deck.ErrCardNotFound
	})

	results, err := NewValidator(path, deck.WithResolver(resolver)).Validate(context.Background())
	require.NoError(t, err)
	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "card 5")
}

func TestValidate_Cancelled(t *testing.T) {
	path := writeDeck(t, "clean.txt", "4x Howler [Crypt]\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewValidator(path).Validate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate_Repeatable(t *testing.T) {
	path := writeDeck(t, "messy.txt", "4x Howler [Crypt]\nnonsense\n2 Abbot [Mystery]\n")
	v := NewValidator(path)

	first, err := v.Validate(context.Background())
	require.NoError(t, err)
	second, err := v.Validate(context.Background())
	require.NoError(t, err)

	assert.Len(t, second.Errors, 1)
	assert.Len(t, second.Warnings, 1)
	assert.Equal(t, first, second)
}
