package deck

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relTypeNotes = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeImage = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeAudio = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/audio"
)

// writeDeck builds a pptx-shaped zip in a temp dir and returns its path.
func writeDeck(t *testing.T, parts map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "deck.pptx")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating deck file: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("adding part %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing part %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing deck file: %v", err)
	}
	return path
}

func openDeck(t *testing.T, parts map[string]string) *Deck {
	t.Helper()
	d, err := Open(writeDeck(t, parts))
	if err != nil {
		t.Fatalf("opening deck: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func slidePart(shapes ...string) string {
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>`+
			`<p:sld xmlns:p=%q xmlns:a=%q xmlns:r=%q>`+
			`<p:cSld><p:spTree>%s</p:spTree></p:cSld></p:sld>`,
		nsP, nsA, nsR, strings.Join(shapes, ""))
}

func notesPart(shapes ...string) string {
	return fmt.Sprintf(
		`<?xml version="1.0" encoding="UTF-8"?>`+
			`<p:notes xmlns:p=%q xmlns:a=%q xmlns:r=%q>`+
			`<p:cSld><p:spTree>%s</p:spTree></p:cSld></p:notes>`,
		nsP, nsA, nsR, strings.Join(shapes, ""))
}

func phShape(phType string, paras ...string) string {
	var body strings.Builder
	for _, p := range paras {
		body.WriteString(`<a:p><a:r><a:t>` + p + `</a:t></a:r></a:p>`)
	}
	ph := ""
	if phType != "" {
		ph = fmt.Sprintf(`<p:ph type=%q/>`, phType)
	}
	return fmt.Sprintf(
		`<p:sp><p:nvSpPr><p:nvPr>%s</p:nvPr></p:nvSpPr>`+
			`<p:txBody>%s</p:txBody></p:sp>`,
		ph, body.String())
}

func titleShape(text string) string { return phShape("title", text) }
func bodyShape(paras ...string) string {
	return phShape("", paras...)
}

func picShape(rID string) string {
	return fmt.Sprintf(
		`<p:pic><p:nvPicPr/><p:blipFill><a:blip r:embed=%q/></p:blipFill></p:pic>`, rID)
}

func relsPart(rels ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(rels, "") + `</Relationships>`
}

func rel(id, relType, target string) string {
	return fmt.Sprintf(`<Relationship Id=%q Type=%q Target=%q/>`, id, relType, target)
}

// ---------------------------------------------------------------------------
// Open / ordering
// ---------------------------------------------------------------------------

func TestOpenOrdersSlidesNumerically(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide10.xml": slidePart(titleShape("ten")),
		"ppt/slides/slide2.xml":  slidePart(titleShape("two")),
		"ppt/slides/slide1.xml":  slidePart(titleShape("one")),
	})

	var got []int
	for _, s := range d.Slides() {
		got = append(got, s.Number)
	}
	want := []int{1, 2, 10}
	if len(got) != len(want) {
		t.Fatalf("slide count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slide order = %v, want %v", got, want)
			break
		}
	}
}

func TestOpenIgnoresNonSlideParts(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml":      slidePart(titleShape("real")),
		"ppt/slides/slide1extra.xml": slidePart(titleShape("bogus")),
		"ppt/slides/slideNotes.xml":  slidePart(titleShape("also bogus")),
	})

	slides := d.Slides()
	if len(slides) != 1 {
		t.Fatalf("slide count = %d, want 1", len(slides))
	}
	if got := slides[0].Title(); got != "real" {
		t.Errorf("slide 1 title = %q, want %q; a near-miss part name displaced the real slide", got, "real")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.pptx")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenNoSlides(t *testing.T) {
	path := writeDeck(t, map[string]string{
		"ppt/presentation.xml": `<p:presentation/>`,
	})
	if _, err := Open(path); err == nil {
		t.Fatal("expected error for deck with no slide parts")
	}
}

func TestOpenSkipsMalformedSlide(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml": "<not-xml",
		"ppt/slides/slide2.xml": slidePart(titleShape("fine")),
	})
	if len(d.Slides()) != 1 {
		t.Fatalf("slide count = %d, want 1", len(d.Slides()))
	}
	if d.Slides()[0].Number != 2 {
		t.Errorf("surviving slide = %d, want 2", d.Slides()[0].Number)
	}
}

// ---------------------------------------------------------------------------
// Field extraction
// ---------------------------------------------------------------------------

func TestSlideTitle(t *testing.T) {
	tests := []struct {
		name  string
		slide string
		want  string
	}{
		{"title placeholder", slidePart(titleShape("  Science  ")), "Science"},
		{"centered title", slidePart(phShape("ctrTitle", "ROUND 1")), "ROUND 1"},
		{"no title shape", slidePart(bodyShape("just body")), ""},
		{"empty tree", slidePart(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openDeck(t, map[string]string{"ppt/slides/slide1.xml": tt.slide})
			if got := d.Slides()[0].Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlideBody(t *testing.T) {
	tests := []struct {
		name  string
		slide string
		want  string
	}{
		{
			"joins non-title shapes with newlines",
			slidePart(titleShape("Science"), bodyShape("first"), bodyShape("second")),
			"first\nsecond",
		},
		{
			"multiple paragraphs in one shape",
			slidePart(bodyShape("line one", "line two")),
			"line one\nline two",
		},
		{
			"drops empty shapes",
			slidePart(titleShape("T"), bodyShape("   "), bodyShape("kept")),
			"kept",
		},
		{
			"excludes title by identity, not text",
			slidePart(titleShape("Echo"), bodyShape("Echo")),
			"Echo",
		},
		{
			"no body",
			slidePart(titleShape("only title")),
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openDeck(t, map[string]string{"ppt/slides/slide1.xml": tt.slide})
			if got := d.Slides()[0].Body(); got != tt.want {
				t.Errorf("Body() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlideNotes(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slidePart(titleShape("Science"), bodyShape("Q")),
		"ppt/slides/_rels/slide1.xml.rels": relsPart(
			rel("rId1", relTypeNotes, "../notesSlides/notesSlide1.xml")),
		"ppt/notesSlides/notesSlide1.xml": notesPart(
			phShape("sldImg"),
			phShape("body", " H2O "),
		),
	})
	if got := d.Slides()[0].Notes(); got != "H2O" {
		t.Errorf("Notes() = %q, want %q", got, "H2O")
	}
}

func TestSlideNotesAbsent(t *testing.T) {
	tests := []struct {
		name  string
		parts map[string]string
	}{
		{
			"no rels manifest",
			map[string]string{"ppt/slides/slide1.xml": slidePart(titleShape("T"))},
		},
		{
			"rels without notes relationship",
			map[string]string{
				"ppt/slides/slide1.xml":            slidePart(titleShape("T")),
				"ppt/slides/_rels/slide1.xml.rels": relsPart(rel("rId1", relTypeImage, "../media/image1.png")),
			},
		},
		{
			"notes part missing from container",
			map[string]string{
				"ppt/slides/slide1.xml": slidePart(titleShape("T")),
				"ppt/slides/_rels/slide1.xml.rels": relsPart(
					rel("rId1", relTypeNotes, "../notesSlides/notesSlide1.xml")),
			},
		},
		{
			"notes slide without body placeholder",
			map[string]string{
				"ppt/slides/slide1.xml": slidePart(titleShape("T")),
				"ppt/slides/_rels/slide1.xml.rels": relsPart(
					rel("rId1", relTypeNotes, "../notesSlides/notesSlide1.xml")),
				"ppt/notesSlides/notesSlide1.xml": notesPart(phShape("sldImg")),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := openDeck(t, tt.parts)
			if got := d.Slides()[0].Notes(); got != "" {
				t.Errorf("Notes() = %q, want empty", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Pictures
// ---------------------------------------------------------------------------

func TestSlidePictures(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slidePart(
			titleShape("T"),
			picShape("rId2"),
			picShape("rId3"),
			picShape("rId4"), // target missing from container
			picShape("rId9"), // no such relationship
		),
		"ppt/slides/_rels/slide1.xml.rels": relsPart(
			rel("rId2", relTypeImage, "../media/image1.jpeg"),
			rel("rId3", relTypeImage, "../media/chart"),
			rel("rId4", relTypeImage, "../media/gone.png"),
		),
		"ppt/media/image1.jpeg": "jpegbytes",
		"ppt/media/chart":       "rawbytes",
	})

	pics := d.Slides()[0].Pictures()
	if len(pics) != 2 {
		t.Fatalf("Pictures() returned %d, want 2", len(pics))
	}
	if pics[0].Part != "ppt/media/image1.jpeg" || pics[0].Ext != "jpeg" {
		t.Errorf("pics[0] = %+v", pics[0])
	}
	// Unknown extension falls back to png.
	if pics[1].Part != "ppt/media/chart" || pics[1].Ext != "png" {
		t.Errorf("pics[1] = %+v", pics[1])
	}
}

// ---------------------------------------------------------------------------
// Audio targets
// ---------------------------------------------------------------------------

func TestAudioTargets(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slidePart(titleShape("T")),
		"ppt/slides/_rels/slide1.xml.rels": relsPart(
			rel("rId1", relTypeAudio, "../media/media1.mp3"),
			rel("rId2", relTypeAudio, `..\media\media2.M4A`),
			rel("rId3", relTypeAudio, "/ppt/media/media3.wav"),
			rel("rId4", relTypeAudio, "media/media4.ogg"),
			rel("rId5", relTypeAudio, "../media/notes.txt"),    // not audio
			rel("rId6", relTypeAudio, "../media/missing.mp3"),  // not in container
			rel("rId7", relTypeImage, "../pictures/image.mp3"), // no media/ marker
		),
		"ppt/media/media1.mp3": "a",
		"ppt/media/media2.M4A": "b",
		"ppt/media/media3.wav": "c",
		"ppt/media/media4.ogg": "d",
		"ppt/media/notes.txt":  "e",
	})

	got := d.AudioTargets(1)
	want := []string{
		"ppt/media/media1.mp3",
		"ppt/media/media2.M4A",
		"ppt/media/media3.wav",
		"ppt/media/media4.ogg",
	}
	if len(got) != len(want) {
		t.Fatalf("AudioTargets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("AudioTargets() = %v, want %v", got, want)
		}
	}
}

func TestAudioTargetsNoManifest(t *testing.T) {
	d := openDeck(t, map[string]string{
		"ppt/slides/slide1.xml": slidePart(titleShape("T")),
	})
	if got := d.AudioTargets(1); len(got) != 0 {
		t.Errorf("AudioTargets() = %v, want empty", got)
	}
}

func TestNormalizeMediaTarget(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"../media/media1.m4a", "ppt/media/media1.m4a"},
		{`..\media\media1.m4a`, "ppt/media/media1.m4a"},
		{"/ppt/media/media1.m4a", "ppt/media/media1.m4a"},
		{"media/media1.m4a", "ppt/media/media1.m4a"},
		{"ppt/media/media1.m4a", "ppt/media/media1.m4a"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			if got := normalizeMediaTarget(tt.target); got != tt.want {
				t.Errorf("normalizeMediaTarget(%q) = %q, want %q", tt.target, got, tt.want)
			}
		})
	}
}
