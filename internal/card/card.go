package card

import (
	"fmt"
	"strings"
)

// ImageBaseURL is where KRCG serves card scans.
const ImageBaseURL = "https://static.krcg.org/card/"

// Card represents one physical copy of a VTES card. Quantities are never
// stored on a card; a deck holds one Card per copy.
type Card struct {
	name     string // Printed card name, also the aggregation key
	cardType Type   // Category set
	imageURL string // Scan URL
}

// New creates a card whose image URL is derived from its name.
func New(name string, t Type) Card {
	return Card{name: name, cardType: t, imageURL: ImageURLFor(name)}
}

// NewWithImage creates a card with an explicit image URL.
func NewWithImage(name string, t Type, imageURL string) Card {
	return Card{name: name, cardType: t, imageURL: imageURL}
}

func (c Card) Name() string     { return c.name }
func (c Card) Type() Type       { return c.cardType }
func (c Card) ImageURL() string { return c.imageURL }

// TypeString returns the display form of the card's type set.
func (c Card) TypeString() string { return c.cardType.String() }

// IsCrypt reports whether the card sits in the crypt. Only the exact Crypt
// singleton qualifies; Crypt combined with anything else is library.
func (c Card) IsCrypt() bool { return c.cardType == Crypt }

// String implements fmt.Stringer.
func (c Card) String() string {
	return fmt.Sprintf("%s [%s]", c.name, c.cardType)
}

var imageNameReplacer = strings.NewReplacer(
	" ", "",
	",", "",
	"'", "",
	".", "",
	"-", "",
)

// ImageURLFor builds the KRCG scan URL for a card name: lower-cased with
// spaces, commas, apostrophes, periods and hyphens removed.
func ImageURLFor(name string) string {
	return ImageBaseURL + imageNameReplacer.Replace(strings.ToLower(name)) + ".jpg"
}
