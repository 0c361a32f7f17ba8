// Package gesture provides rule-based hand gesture classification.
package gesture

// Label identifies a recognized hand shape. The set of labels is closed:
// every classification produces exactly one of the values below.
type Label string

const (
	// LabelFist is a closed hand with no fingers extended.
	LabelFist Label = "fist"
	// LabelOpenHand is all five fingers extended.
	LabelOpenHand Label = "open_hand"
	// LabelThumbsUp is only the thumb extended.
	LabelThumbsUp Label = "thumbs_up"
	// LabelThumbsDown is a closed hand with the thumb pointing downward.
	LabelThumbsDown Label = "thumbs_down"
	// LabelPointing is only the index finger extended.
	LabelPointing Label = "pointing"
	// LabelPeace is index and middle fingers extended.
	LabelPeace Label = "peace"
	// LabelOK is thumb and index extended with their tips touching.
	LabelOK Label = "ok"
	// LabelRockOn is index and pinky extended.
	LabelRockOn Label = "rock_on"
	// LabelCallMe is thumb and pinky extended.
	LabelCallMe Label = "call_me"
	// LabelGun is thumb and index extended with their tips apart.
	LabelGun Label = "gun"
	// LabelSpock is four fingers extended with a split between middle and ring.
	LabelSpock Label = "spock"
	// LabelLShape is thumb and index extended at a right angle.
	LabelLShape Label = "l_shape"
	// LabelThree is thumb, index and middle extended.
	LabelThree Label = "three"
	// LabelFour is all fingers but the thumb extended.
	LabelFour Label = "four"
	// LabelOne is only the index finger extended.
	LabelOne Label = "one"
	// LabelTwo is index and middle fingers extended.
	LabelTwo Label = "two"
	// LabelUnknown is a detected hand that matched no rule.
	LabelUnknown Label = "unknown"
	// LabelNone means no valid hand pose was supplied.
	LabelNone Label = "none"
)

// Meta holds the presentation metadata attached to a label. It is a fixed
// lookup table for display purposes and plays no part in classification.
type Meta struct {
	Glyph string `json:"glyph"`
	Name  string `json:"name"`
}

var labelMeta = map[Label]Meta{
	LabelFist:       {Glyph: "✊", Name: "Fist"},
	LabelOpenHand:   {Glyph: "🖐️", Name: "Open Hand"},
	LabelThumbsUp:   {Glyph: "👍", Name: "Thumbs Up"},
	LabelThumbsDown: {Glyph: "👎", Name: "Thumbs Down"},
	LabelPointing:   {Glyph: "☝️", Name: "Pointing"},
	LabelPeace:      {Glyph: "✌️", Name: "Peace"},
	LabelOK:         {Glyph: "👌", Name: "OK"},
	LabelRockOn:     {Glyph: "🤘", Name: "Rock On"},
	LabelCallMe:     {Glyph: "🤙", Name: "Call Me"},
	LabelGun:        {Glyph: "🔫", Name: "Finger Gun"},
	LabelSpock:      {Glyph: "🖖", Name: "Spock"},
	LabelLShape:     {Glyph: "👆", Name: "L Shape"},
	LabelThree:      {Glyph: "3️⃣", Name: "Three"},
	LabelFour:       {Glyph: "4️⃣", Name: "Four"},
	LabelOne:        {Glyph: "1️⃣", Name: "One"},
	LabelTwo:        {Glyph: "2️⃣", Name: "Two"},
	LabelUnknown:    {Glyph: "❓", Name: "Unknown"},
	LabelNone:       {Glyph: "–", Name: "No Hand"},
}

// Metadata returns the display glyph and name for a label.
// Unrecognized labels fall back to the metadata for LabelUnknown.
func (l Label) Metadata() Meta {
	if m, ok := labelMeta[l]; ok {
		return m
	}
	return labelMeta[LabelUnknown]
}

// Valid reports whether the label is part of the closed label set.
func (l Label) Valid() bool {
	_, ok := labelMeta[l]
	return ok
}

// Labels returns every label in the closed set, in rule-table order with
// unknown and none last.
func Labels() []Label {
	return []Label{
		LabelFist, LabelOpenHand, LabelThumbsUp, LabelThumbsDown,
		LabelPointing, LabelPeace, LabelOK, LabelRockOn, LabelCallMe,
		LabelGun, LabelSpock, LabelLShape, LabelThree, LabelFour,
		LabelOne, LabelTwo, LabelUnknown, LabelNone,
	}
}
