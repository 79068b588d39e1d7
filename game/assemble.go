package game

import (
	"log/slog"
	"strings"
)

// Slide is the read-only view of one deck slide the assembler consumes.
// Field accessors must be total: absent fields come back as empty strings.
// Media is invoked only for slides that produce output, so implementations
// may extract (and write) assets lazily.
type Slide interface {
	Number() int
	Title() string
	Body() string
	Notes() string
	Media() (images, audio []MediaRef)
}

// Markers are the section header titles. Comparison against slide titles is
// trimmed, case-insensitive and exact, so a typoed marker title is just an
// ordinary content slide.
type Markers struct {
	Round1 string
	Round2 string
	Final  string
}

// Kind classifies one slide title against a marker set.
type Kind int

const (
	KindContent Kind = iota
	KindRound1Marker
	KindRound2Marker
	KindFinalMarker
)

func (k Kind) String() string {
	switch k {
	case KindRound1Marker:
		return "round 1 marker"
	case KindRound2Marker:
		return "round 2 marker"
	case KindFinalMarker:
		return "final"
	default:
		return "content"
	}
}

// Classify matches a slide title against the markers.
func (m Markers) Classify(title string) Kind {
	switch normalizeTitle(title) {
	case normalizeTitle(m.Round1):
		return KindRound1Marker
	case normalizeTitle(m.Round2):
		return KindRound2Marker
	case normalizeTitle(m.Final):
		return KindFinalMarker
	}
	return KindContent
}

func normalizeTitle(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

type section int

const (
	sectionNone section = iota
	sectionRound1
	sectionRound2
)

// Assembler folds an ordered slide sequence into a Document. It owns the
// accumulating round/category/clue structures for the duration of one
// conversion; create a fresh one per run.
type Assembler struct {
	markers Markers
	current section
	round1  categoryList
	round2  categoryList
	final   *FinalClue
	dropped int
}

// NewAssembler returns an assembler in the initial state: no current
// section, empty rounds, no final clue.
func NewAssembler(markers Markers) *Assembler {
	return &Assembler{markers: markers}
}

// Visit classifies one slide and folds it into the accumulating document.
// Slides are expected in deck order; there is no backtracking.
func (a *Assembler) Visit(s Slide) {
	switch a.markers.Classify(s.Title()) {
	case KindRound1Marker:
		a.current = sectionRound1
		return
	case KindRound2Marker:
		a.current = sectionRound2
		return
	case KindFinalMarker:
		images, audio := s.Media()
		// A later final slide replaces an earlier one.
		a.final = &FinalClue{
			Category: a.markers.Final,
			Question: strings.TrimSpace(s.Body()),
			Answer:   strings.TrimSpace(s.Notes()),
			Images:   images,
			Audio:    audio,
		}
		a.current = sectionNone
		return
	}

	// Content slides outside a round section are skipped entirely.
	if a.current == sectionNone {
		return
	}

	category := strings.TrimSpace(s.Title())
	question := strings.TrimSpace(s.Body())
	answer := strings.TrimSpace(s.Notes())

	// Empty or template slides produce nothing; this is authoring
	// tolerance, not an error.
	if category == "" || question == "" || answer == "" {
		a.dropped++
		slog.Debug("assemble: dropping incomplete clue slide",
			"slide", s.Number(),
			"has_category", category != "",
			"has_question", question != "",
			"has_answer", answer != "")
		return
	}

	images, audio := s.Media()
	clue := Clue{Question: question, Answer: answer, Images: images, Audio: audio}
	if a.current == sectionRound1 {
		a.round1.add(category, clue)
	} else {
		a.round2.add(category, clue)
	}
}

// Dropped returns how many content slides were dropped for missing
// category, question or answer text.
func (a *Assembler) Dropped() int {
	return a.dropped
}

// Document projects the fold state into the fixed two-round output shape.
func (a *Assembler) Document() *Document {
	return &Document{
		Title: DocumentTitle,
		Rounds: []Round{
			{Name: Round1Name, Categories: a.round1.categories()},
			{Name: Round2Name, Categories: a.round2.categories()},
		},
		Final: a.final,
	}
}
