package card

import "strings"

// Type is a set of VTES card categories. A card can belong to several
// categories at once (e.g. Modifier/Combat), so each category is a bit.
type Type uint16

// Token is the empty set. It is also what ParseType returns for text it
// does not recognise.
const Token Type = 0x0000

const (
	Crypt           Type = 0x0001
	Master          Type = 0x0002
	Action          Type = 0x0004
	ActionModifier  Type = 0x0008
	PoliticalAction Type = 0x0010
	Equipment       Type = 0x0020
	Retainer        Type = 0x0040
	Ally            Type = 0x0080
	Combat          Type = 0x0100
	Reaction        Type = 0x0200
	Event           Type = 0x0400
	Power           Type = 0x0800
	Conviction      Type = 0x1000
)

// UnknownLabel is the string form of the empty set.
const UnknownLabel = "Unknown"

type category struct {
	flag  Type
	label string
}

// categories is in display order. String relies on it.
var categories = [...]category{
	{Crypt, "Crypt"},
	{Master, "Master"},
	{Action, "Action"},
	{ActionModifier, "Modifier"},
	{PoliticalAction, "Political Action"},
	{Equipment, "Equipment"},
	{Retainer, "Retainer"},
	{Ally, "Ally"},
	{Combat, "Combat"},
	{Reaction, "Reaction"},
	{Event, "Event"},
	{Power, "Power"},
	{Conviction, "Conviction"},
}

// aliases are accepted by ParseType next to the canonical labels.
var aliases = map[string]Type{
	"ActionModifier":  ActionModifier,
	"Action Modifier": ActionModifier,
	"PoliticalAction": PoliticalAction,
}

// String returns the labels of every category in t joined by "/", or
// "Unknown" for the empty set.
func (t Type) String() string {
	var labels []string
	for _, c := range categories {
		if t&c.flag != 0 {
			labels = append(labels, c.label)
		}
	}
	if len(labels) == 0 {
		return UnknownLabel
	}
	return strings.Join(labels, "/")
}

// Has reports whether every category in c is also in t.
func (t Type) Has(c Type) bool {
	return c != Token && t&c == c
}

// Categories returns the single-category values contained in t, in display order.
func (t Type) Categories() []Type {
	var out []Type
	for _, c := range categories {
		if t&c.flag != 0 {
			out = append(out, c.flag)
		}
	}
	return out
}

// All returns every single category in display order.
func All() []Type {
	out := make([]Type, len(categories))
	for i, c := range categories {
		out[i] = c.flag
	}
	return out
}

// Label returns the canonical label of a single category and false for
// anything else (including compound sets and Token).
func Label(t Type) (string, bool) {
	for _, c := range categories {
		if c.flag == t {
			return c.label, true
		}
	}
	return "", false
}

// ParseType decodes a label or a "/"-joined list of labels. Segments are
// trimmed and unioned. Unrecognised text decodes to Token.
func ParseType(text string) Type {
	for _, c := range categories {
		if text == c.label {
			return c.flag
		}
	}
	if t, ok := aliases[text]; ok {
		return t
	}

	if strings.Contains(text, "/") {
		var combined Type
		for _, part := range strings.Split(text, "/") {
			combined |= ParseType(strings.TrimSpace(part))
		}
		return combined
	}

	return Token
}
