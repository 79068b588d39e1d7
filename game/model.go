// Package game holds the trivia content model and the slide classification
// fold that builds it.
package game

// DocumentTitle is the fixed title of every output document.
const DocumentTitle = "Jeopardy Content"

// Fixed round names in the output document.
const (
	Round1Name = "Round 1"
	Round2Name = "Round 2"
)

// MediaRef points at an extracted asset file, relative to the output root.
type MediaRef struct {
	Src string `json:"src"`
}

// Clue is one question/answer pair with optional attached media. The media
// keys are present in the JSON only when non-empty.
type Clue struct {
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Images   []MediaRef `json:"images,omitempty"`
	Audio    []MediaRef `json:"audio,omitempty"`
}

// Category is a named, ordered clue list. Identity is the name: content
// slides sharing a title accumulate into one category in encounter order.
type Category struct {
	Name  string `json:"name"`
	Clues []Clue `json:"clues"`
}

// Round pairs a fixed round name with its categories in first-encounter
// order.
type Round struct {
	Name       string     `json:"name"`
	Categories []Category `json:"categories"`
}

// FinalClue is the single final-round clue. Its category is always the
// configured final marker text, not the slide's literal title.
type FinalClue struct {
	Category string     `json:"category"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Images   []MediaRef `json:"images,omitempty"`
	Audio    []MediaRef `json:"audio,omitempty"`
}

// Document is the complete output of one conversion. Final serializes as an
// explicit null when no final slide was encountered.
type Document struct {
	Title  string     `json:"title"`
	Rounds []Round    `json:"rounds"`
	Final  *FinalClue `json:"final"`
}
