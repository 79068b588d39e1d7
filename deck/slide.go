package deck

import (
	"encoding/xml"
	"log/slog"
	"path"
	"strings"
)

// Slide is one slide of an open deck. Field accessors are total: any absent
// or malformed field comes back as an empty value, never an error, because
// authoring decks routinely omit titles, bodies and notes.
type Slide struct {
	deck *Deck

	// Number is the slide's 1-based position key. It is both the output
	// ordinal and the key for the slide's relationship manifest.
	Number int

	shapes   []shape
	pics     []picXML
	titleIdx int // index into shapes, -1 when the slide has no title shape
}

// Slide XML structures (simplified). Unqualified names match by local name,
// so the p:/a: namespaces need no special handling.
type slideXML struct {
	CSld struct {
		SpTree spTree `xml:"spTree"`
	} `xml:"cSld"`
}

type spTree struct {
	Shapes []shape  `xml:"sp"`
	Pics   []picXML `xml:"pic"`
}

type shape struct {
	NvSpPr struct {
		NvPr struct {
			Ph *placeholder `xml:"ph"`
		} `xml:"nvPr"`
	} `xml:"nvSpPr"`
	TxBody *textBody `xml:"txBody"`
}

type placeholder struct {
	Type string `xml:"type,attr"`
	Idx  string `xml:"idx,attr"`
}

type textBody struct {
	Paras []paragraph `xml:"p"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text string `xml:"t"`
}

type picXML struct {
	BlipFill struct {
		Blip struct {
			Embed string `xml:"embed,attr"`
		} `xml:"blip"`
	} `xml:"blipFill"`
}

func parseSlide(d *Deck, number int, data []byte) (*Slide, error) {
	var sx slideXML
	if err := xml.Unmarshal(data, &sx); err != nil {
		return nil, err
	}

	s := &Slide{
		deck:     d,
		Number:   number,
		shapes:   sx.CSld.SpTree.Shapes,
		pics:     sx.CSld.SpTree.Pics,
		titleIdx: -1,
	}
	for i, sp := range s.shapes {
		if isTitlePlaceholder(sp) {
			s.titleIdx = i
			break
		}
	}
	return s, nil
}

func isTitlePlaceholder(sp shape) bool {
	ph := sp.NvSpPr.NvPr.Ph
	return ph != nil && (ph.Type == "title" || ph.Type == "ctrTitle")
}

// Title returns the slide's title placeholder text, trimmed; "" when the
// slide has no title shape.
func (s *Slide) Title() string {
	if s.titleIdx < 0 {
		return ""
	}
	return strings.TrimSpace(bodyText(s.shapes[s.titleIdx].TxBody))
}

// Body returns the combined text of every non-title text shape, in traversal
// order, empties dropped, joined with newlines. The title shape is excluded
// by identity, not by text.
func (s *Slide) Body() string {
	var parts []string
	for i, sp := range s.shapes {
		if i == s.titleIdx || sp.TxBody == nil {
			continue
		}
		if text := strings.TrimSpace(bodyText(sp.TxBody)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Notes returns the speaker notes text, resolved through the slide's
// notesSlide relationship; "" on any absence.
func (s *Slide) Notes() string {
	var target string
	for _, rel := range s.deck.slideRels(s.Number) {
		if strings.HasSuffix(rel.Type, "/notesSlide") {
			target = rel.Target
			break
		}
	}
	if target == "" {
		return ""
	}

	data, err := s.deck.ReadPart(resolveSlideTarget(target))
	if err != nil {
		return ""
	}
	var notes slideXML
	if err := xml.Unmarshal(data, &notes); err != nil {
		return ""
	}

	// The notes text lives in the body placeholder; other shapes on a notes
	// slide are the slide thumbnail and the slide number.
	for _, sp := range notes.CSld.SpTree.Shapes {
		ph := sp.NvSpPr.NvPr.Ph
		if ph != nil && ph.Type == "body" && sp.TxBody != nil {
			return strings.TrimSpace(bodyText(sp.TxBody))
		}
	}
	return ""
}

// Picture is a picture shape resolved to its container part.
type Picture struct {
	Part string // container path of the image part
	Ext  string // lowercased extension without the dot; "png" when unknown
}

// Pictures returns the slide's picture shapes in traversal order, resolved
// through the slide's relationship manifest. Pictures whose relationship or
// target part is missing are skipped.
func (s *Slide) Pictures() []Picture {
	if len(s.pics) == 0 {
		return nil
	}

	targets := make(map[string]string)
	for _, rel := range s.deck.slideRels(s.Number) {
		targets[rel.ID] = rel.Target
	}

	var pics []Picture
	for _, p := range s.pics {
		embed := p.BlipFill.Blip.Embed
		if embed == "" {
			continue
		}
		target, ok := targets[embed]
		if !ok {
			continue
		}
		part := resolveSlideTarget(target)
		if !s.deck.HasPart(part) {
			slog.Debug("deck: picture part not in container", "slide", s.Number, "part", part, "rId", embed)
			continue
		}
		ext := strings.TrimPrefix(strings.ToLower(path.Ext(part)), ".")
		if ext == "" {
			ext = "png"
		}
		pics = append(pics, Picture{Part: part, Ext: ext})
	}
	return pics
}

// bodyText flattens a text body: runs concatenated per paragraph, paragraphs
// joined with newlines.
func bodyText(tb *textBody) string {
	if tb == nil {
		return ""
	}
	lines := make([]string, len(tb.Paras))
	for i, para := range tb.Paras {
		var line strings.Builder
		for _, r := range para.Runs {
			line.WriteString(r.Text)
		}
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}

// resolveSlideTarget resolves a relationship target relative to ppt/slides/.
func resolveSlideTarget(target string) string {
	target = strings.ReplaceAll(target, "\\", "/")
	return path.Clean("ppt/slides/" + target)
}
