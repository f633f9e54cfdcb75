package deck

import (
	"fmt"
	"sync"

	"github.com/arcanaland/methuselah/internal/card"
)

// Zone is one of the two halves of a VTES deck.
type Zone int

const (
	ZoneCrypt Zone = iota
	ZoneLibrary
)

func (z Zone) String() string {
	switch z {
	case ZoneCrypt:
		return "crypt"
	case ZoneLibrary:
		return "library"
	default:
		return fmt.Sprintf("zone(%d)", int(z))
	}
}

// ParseZone accepts "crypt" or "library".
func ParseZone(s string) (Zone, error) {
	switch s {
	case "crypt":
		return ZoneCrypt, nil
	case "library":
		return ZoneLibrary, nil
	}
	return 0, fmt.Errorf("unknown zone %q (expected crypt or library)", s)
}

// ZoneOf returns the zone a card is counted in.
func ZoneOf(c card.Card) Zone {
	if c.IsCrypt() {
		return ZoneCrypt
	}
	return ZoneLibrary
}

// Info is the descriptive metadata of a deck. Only structured exports carry it.
type Info struct {
	Name        string `json:"name"`
	Author      string `json:"author"`
	Description string `json:"description"`
}

// Entry is one distinct card name within a zone, with its copy count.
type Entry struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
	Quantity int    `json:"quantity"`
}

// Deck is an ordered list of card copies. Content is only ever replaced as
// a whole, under the write lock, so readers never see a half-loaded deck.
type Deck struct {
	mu    sync.RWMutex
	info  Info
	cards []card.Card
}

// New creates an empty deck.
func New() *Deck {
	return &Deck{}
}

// NewSample creates a deck holding the built-in reference list.
func NewSample() *Deck {
	d := New()
	d.LoadSampleDeck()
	return d
}

// Replace swaps the deck content for cards. The slice is copied.
func (d *Deck) Replace(cards []card.Card, info Info) {
	next := make([]card.Card, len(cards))
	copy(next, cards)

	d.mu.Lock()
	d.cards = next
	d.info = info
	d.mu.Unlock()
}

// Clear empties the deck. Calling it on an empty deck is a no-op.
func (d *Deck) Clear() {
	d.mu.Lock()
	d.cards = nil
	d.info = Info{}
	d.mu.Unlock()
}

// LoadSampleDeck replaces the content with the built-in reference list.
func (d *Deck) LoadSampleDeck() {
	d.Replace(SampleCards(), SampleInfo)
}

// Info returns the deck metadata.
func (d *Deck) Info() Info {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.info
}

// Len returns the total number of card copies.
func (d *Deck) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.cards)
}

// Cards returns a copy of the card sequence in insertion order.
func (d *Deck) Cards() []card.Card {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]card.Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// CryptSize counts cards whose type is exactly Crypt.
func (d *Deck) CryptSize() int {
	return d.zoneSize(ZoneCrypt)
}

// LibrarySize counts every card that is not exactly Crypt.
func (d *Deck) LibrarySize() int {
	return d.zoneSize(ZoneLibrary)
}

func (d *Deck) zoneSize(z Zone) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n := 0
	for _, c := range d.cards {
		if ZoneOf(c) == z {
			n++
		}
	}
	return n
}

// CardTypes returns the distinct type strings present, in order of first
// appearance.
func (d *Deck) CardTypes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var types []string
	seen := make(map[string]bool)
	for _, c := range d.cards {
		s := c.TypeString()
		if !seen[s] {
			seen[s] = true
			types = append(types, s)
		}
	}
	return types
}

// Grouped returns one entry per distinct card name in zone z, in order of
// first appearance. Quantity counts every copy of the name in that zone,
// contiguous or not.
func (d *Deck) Grouped(z Zone) []Entry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var entries []Entry
	index := make(map[string]int)
	for _, c := range d.cards {
		if ZoneOf(c) != z {
			continue
		}
		if i, ok := index[c.Name()]; ok {
			entries[i].Quantity++
			continue
		}
		index[c.Name()] = len(entries)
		entries = append(entries, Entry{
			Name:     c.Name(),
			Type:     c.TypeString(),
			ImageURL: c.ImageURL(),
			Quantity: 1,
		})
	}
	return entries
}

// CryptCards is Grouped(ZoneCrypt).
func (d *Deck) CryptCards() []Entry { return d.Grouped(ZoneCrypt) }

// LibraryCards is Grouped(ZoneLibrary).
func (d *Deck) LibraryCards() []Entry { return d.Grouped(ZoneLibrary) }
