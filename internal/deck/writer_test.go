package deck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/methuselah/internal/card"
)

type nameTypeQty struct {
	Name     string
	Type     string
	Quantity int
}

func strip(entries []Entry) []nameTypeQty {
	out := make([]nameTypeQty, len(entries))
	for i, e := range entries {
		out[i] = nameTypeQty{e.Name, e.Type, e.Quantity}
	}
	return out
}

func TestWriteText_RoundTrip(t *testing.T) {
	original := NewSample()

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, original))

	report, cards, err := ParseText(&buf, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Skipped)

	parsed := New()
	parsed.Replace(cards, Info{})

	assert.Equal(t, original.Len(), parsed.Len())
	assert.Equal(t, strip(original.CryptCards()), strip(parsed.CryptCards()))
	assert.Equal(t, strip(original.LibraryCards()), strip(parsed.LibraryCards()))
}

func TestWriteText_Format(t *testing.T) {
	d := New()
	d.Replace([]card.Card{
		card.New("Howler", card.Crypt),
		card.New("Howler", card.Crypt),
		card.New("Swiftness of the Stag", card.ActionModifier|card.Combat),
	}, Info{Name: "Tiny", Author: "Stolas", Description: "line one\nline two"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, d))

	want := strings.Join([]string{
		"# Tiny",
		"# Author: Stolas",
		"# line one",
		"# line two",
		"",
		"# crypt (2)",
		"2x Howler [Crypt]",
		"",
		"# library (1)",
		"1x Swiftness of the Stag [Modifier/Combat]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestWriteText_NoInfo(t *testing.T) {
	d := New()
	d.Replace([]card.Card{card.New("Abbot", card.Action)}, Info{})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, d))
	assert.Equal(t, "# crypt (0)\n\n# library (1)\n1x Abbot [Action]\n", buf.String())
}

func TestWriteText_TokenReadsBackAsAction(t *testing.T) {
	d := New()
	d.Replace([]card.Card{card.New("Blood Doll", card.Token)}, Info{})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, d))
	assert.Contains(t, buf.String(), "1x Blood Doll [Unknown]")

	report, cards, err := ParseText(&buf, nil)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, card.Action, cards[0].Type())
	assert.False(t, report.Lines[0].KnownTag)
}
