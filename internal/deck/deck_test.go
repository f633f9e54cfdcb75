package deck

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/methuselah/internal/card"
)

func sumQuantities(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}

func assertUniqueNames(t *testing.T, entries []Entry) {
	t.Helper()
	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Name], "duplicate entry %q", e.Name)
		seen[e.Name] = true
	}
}

func TestSampleDeck(t *testing.T) {
	d := NewSample()

	assert.Equal(t, 101, d.Len())
	assert.Equal(t, 12, d.CryptSize())
	assert.Equal(t, 89, d.LibrarySize())
	assert.Equal(t, SampleInfo, d.Info())

	crypt := d.CryptCards()
	library := d.LibraryCards()
	assert.Len(t, crypt, 5)
	assert.Len(t, library, 29)
	assert.Equal(t, d.CryptSize(), sumQuantities(crypt))
	assert.Equal(t, d.LibrarySize(), sumQuantities(library))
	assertUniqueNames(t, crypt)
	assertUniqueNames(t, library)

	assert.Equal(t, Entry{
		Name:     "Howler",
		Type:     "Crypt",
		ImageURL: "https://static.krcg.org/card/howler.jpg",
		Quantity: 4,
	}, crypt[0])
	assert.Equal(t, "https://static.krcg.org/card/siamesethe.jpg", crypt[1].ImageURL)
	assert.Equal(t, "Archon Investigation", library[0].Name)
	assert.Equal(t, "Narrow Minds", library[len(library)-1].Name)

	var swiftness Entry
	for _, e := range library {
		if e.Name == "Swiftness of the Stag" {
			swiftness = e
		}
	}
	assert.Equal(t, "Modifier/Combat", swiftness.Type)
	assert.Equal(t, 8, swiftness.Quantity)
}

func TestSampleDeck_CardTypes(t *testing.T) {
	d := NewSample()
	assert.Equal(t, []string{
		"Crypt", "Master", "Action", "Ally", "Modifier",
		"Modifier/Combat", "Reaction", "Combat", "Event",
	}, d.CardTypes())
}

func TestSampleCards_FreshCopy(t *testing.T) {
	a := SampleCards()
	b := SampleCards()
	require.Equal(t, a, b)
	a[0] = card.New("Changed", card.Master)
	assert.Equal(t, "Howler", b[0].Name())
}

func TestGrouped_CountsAcrossWholeSequence(t *testing.T) {
	d := New()
	d.Replace([]card.Card{
		card.New("Howler", card.Crypt),
		card.New("Abbot", card.Action),
		card.New("Nettie", card.Crypt),
		card.New("Howler", card.Crypt),
		card.New("Abbot", card.Action),
		card.New("Howler", card.Crypt),
	}, Info{})

	assert.Equal(t, []Entry{
		{Name: "Howler", Type: "Crypt", ImageURL: card.ImageURLFor("Howler"), Quantity: 3},
		{Name: "Nettie", Type: "Crypt", ImageURL: card.ImageURLFor("Nettie"), Quantity: 1},
	}, d.Grouped(ZoneCrypt))
	assert.Equal(t, []Entry{
		{Name: "Abbot", Type: "Action", ImageURL: card.ImageURLFor("Abbot"), Quantity: 2},
	}, d.Grouped(ZoneLibrary))
}

func TestZonePartition_EqualityNotContainment(t *testing.T) {
	d := New()
	d.Replace([]card.Card{
		card.New("Howler", card.Crypt),
		card.New("Oddity", card.Crypt|card.Master),
		card.New("Blank", card.Token),
	}, Info{})

	assert.Equal(t, 1, d.CryptSize())
	assert.Equal(t, 2, d.LibrarySize())
	assert.Equal(t, d.Len(), d.CryptSize()+d.LibrarySize())
	assert.Equal(t, []string{"Crypt", "Crypt/Master", "Unknown"}, d.CardTypes())

	library := d.LibraryCards()
	require.Len(t, library, 2)
	assert.Equal(t, "Oddity", library[0].Name)
}

func TestClear_Idempotent(t *testing.T) {
	d := NewSample()
	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, Info{}, d.Info())
	d.Clear()
	assert.Equal(t, 0, d.Len())
	assert.Empty(t, d.CryptCards())
	assert.Empty(t, d.LibraryCards())
	assert.Empty(t, d.CardTypes())
}

func TestReplace_CopiesInput(t *testing.T) {
	cards := []card.Card{card.New("Howler", card.Crypt)}
	d := New()
	d.Replace(cards, Info{Name: "test"})

	cards[0] = card.New("Abbot", card.Action)
	assert.Equal(t, "Howler", d.Cards()[0].Name())

	out := d.Cards()
	out[0] = card.New("Abbot", card.Action)
	assert.Equal(t, "Howler", d.Cards()[0].Name())
	assert.Equal(t, "test", d.Info().Name)
}

func TestReplace_ReadersSeeWholeDecks(t *testing.T) {
	small := []card.Card{card.New("Howler", card.Crypt)}
	d := New()
	d.Replace(small, Info{})

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := d.Len()
				if n != 1 && n != 101 {
					t.Errorf("observed partial deck of %d cards", n)
					return
				}
			}
		}()
	}

	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			d.LoadSampleDeck()
		} else {
			d.Replace(small, Info{})
		}
	}
	close(stop)
	wg.Wait()
}

func TestZone(t *testing.T) {
	assert.Equal(t, "crypt", ZoneCrypt.String())
	assert.Equal(t, "library", ZoneLibrary.String())
	assert.Equal(t, "zone(7)", Zone(7).String())

	z, err := ParseZone("library")
	require.NoError(t, err)
	assert.Equal(t, ZoneLibrary, z)

	_, err = ParseZone("hand")
	assert.Error(t, err)

	assert.Equal(t, ZoneCrypt, ZoneOf(card.New("Howler", card.Crypt)))
	assert.Equal(t, ZoneLibrary, ZoneOf(card.New("Oddity", card.Crypt|card.Combat)))
}
