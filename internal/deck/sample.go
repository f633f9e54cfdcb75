package deck

import "github.com/arcanaland/methuselah/internal/card"

// SampleInfo describes the built-in deck.
var SampleInfo = Info{Name: "Sample deck"}

type sampleEntry struct {
	name     string
	kind     card.Type
	imageURL string
	copies   int
}

// sampleList is the reference deck used whenever nothing else can be
// loaded. Order and image URLs are fixed; do not regenerate them from names.
var sampleList = []sampleEntry{
	// Crypt
	{"Howler", card.Crypt, "https://static.krcg.org/card/howler.jpg", 4},
	{"Siamese", card.Crypt, "https://static.krcg.org/card/siamesethe.jpg", 3},
	{"Cynthia", card.Crypt, "https://static.krcg.org/card/cynthiaingold.jpg", 3},
	{"Nettie", card.Crypt, "https://static.krcg.org/card/nettiehale.jpg", 1},
	{"Juanita", card.Crypt, "https://static.krcg.org/card/juanitasantiago.jpg", 1},

	// Master
	{"Archon Investigation", card.Master, "https://static.krcg.org/card/archoninvestigation.jpg", 1},
	{"Guardian Angel", card.Master, "https://static.krcg.org/card/guardianangel.jpg", 1},
	{"Powerbase: Montreal", card.Master, "https://static.krcg.org/card/powerbasemontreal.jpg", 1},
	{"Rack, The", card.Master, "https://static.krcg.org/card/rackthe.jpg", 1},
	{"Smiling Jack, The Anarch", card.Master, "https://static.krcg.org/card/smilingjacktheanarch.jpg", 1},
	{"Vessel", card.Master, "https://static.krcg.org/card/vessel.jpg", 4},
	{"Villein", card.Master, "https://static.krcg.org/card/villein.jpg", 4},

	// Action
	{"Abbot", card.Action, "https://static.krcg.org/card/abbot.jpg", 2},
	{"Army of Rats", card.Action, "https://static.krcg.org/card/armyofrats.jpg", 1},
	{"Charge of the Buffalo", card.Action, "https://static.krcg.org/card/chargeofthebuffalo.jpg", 2},
	{"Enchant Kindred", card.Action, "https://static.krcg.org/card/enchantkindred.jpg", 7},
	{"Engling Fury", card.Action, "https://static.krcg.org/card/englingfury.jpg", 4},

	// Ally
	{"High Top", card.Ally, "https://static.krcg.org/card/hightop.jpg", 1},
	{"Ossian", card.Ally, "https://static.krcg.org/card/ossian.jpg", 1},

	// Action modifier
	{"Aire of Elation", card.ActionModifier, "https://static.krcg.org/card/aireofelation.jpg", 2},
	{"Squirrel Balance", card.ActionModifier, "https://static.krcg.org/card/squirrelbalance.jpg", 3},
	{"Swiftness of the Stag", card.ActionModifier | card.Combat, "https://static.krcg.org/card/swiftnessofthestag.jpg", 8},

	// Reaction
	{"Cats' Guidance", card.Reaction, "https://static.krcg.org/card/catsguidance.jpg", 4},
	{"Ears of the Hare", card.Reaction, "https://static.krcg.org/card/earsofthehare.jpg", 6},
	{"Falcon's Eye", card.Reaction, "https://static.krcg.org/card/falconseye.jpg", 1},
	{"On the Qui Vive", card.Reaction, "https://static.krcg.org/card/onthequivive.jpg", 3},
	{"Speak with Spirits", card.Reaction, "https://static.krcg.org/card/speakwithspirits.jpg", 8},

	// Combat
	{"Canine Horde", card.Combat, "https://static.krcg.org/card/caninehorde.jpg", 1},
	{"Carrion Crows", card.Combat, "https://static.krcg.org/card/carrioncrows.jpg", 3},
	{"Drawing Out the Beast", card.Combat, "https://static.krcg.org/card/drawingoutthebeast.jpg", 2},
	{"Target Vitals", card.Combat, "https://static.krcg.org/card/targetvitals.jpg", 6},
	{"Taste of Vitae", card.Combat, "https://static.krcg.org/card/tasteofvitae.jpg", 4},
	{"Weighted Walking Stick", card.Combat, "https://static.krcg.org/card/weightedwalkingstick.jpg", 6},

	// Event
	{"Narrow Minds", card.Event, "https://static.krcg.org/card/narrowminds.jpg", 1},
}

// SampleCards returns a fresh copy of the reference deck, one Card per copy.
func SampleCards() []card.Card {
	var cards []card.Card
	for _, e := range sampleList {
		for i := 0; i < e.copies; i++ {
			cards = append(cards, card.NewWithImage(e.name, e.kind, e.imageURL))
		}
	}
	return cards
}
