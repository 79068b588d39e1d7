// Package decktrivia converts authored PPTX slide decks into normalized
// trivia game content: two rounds of categorized clues plus an optional
// final clue, with embedded images and audio extracted into an assets tree.
package decktrivia

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"decktrivia/deck"
	"decktrivia/export"
	"decktrivia/game"
	"decktrivia/media"
	"decktrivia/store"
)

// Result summarizes one conversion run. It doubles as the summary stored in
// the catalog, so the countable fields carry JSON tags.
type Result struct {
	Document *game.Document `json:"-"`

	JSONPath     string `json:"json_path"`
	ImagesDir    string `json:"images_dir"`
	AudioDir     string `json:"audio_dir"`
	WorkbookPath string `json:"workbook_path,omitempty"`

	Round1Categories int  `json:"round1_categories"`
	Round2Categories int  `json:"round2_categories"`
	Clues            int  `json:"clues"`
	DroppedSlides    int  `json:"dropped_slides"`
	Images           int  `json:"images"`
	AudioClips       int  `json:"audio_clips"`
	FinalPresent     bool `json:"final_present"`

	// Skipped is true when the catalog showed the deck unchanged and the
	// conversion was not re-run; the other fields then come from the
	// previous run's summary.
	Skipped bool `json:"-"`
}

// ConvertOption adjusts a single Convert call.
type ConvertOption func(*convertOptions)

type convertOptions struct {
	force bool
}

// WithForce converts even when the catalog says the deck is unchanged.
func WithForce() ConvertOption {
	return func(o *convertOptions) { o.force = true }
}

// Converter turns PPTX decks into trivia content documents.
type Converter struct {
	cfg     Config
	catalog *store.Catalog
}

// NewConverter validates the configuration and, when enabled, opens the
// conversion catalog.
func NewConverter(cfg Config) (*Converter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Converter{cfg: cfg}
	if cfg.Catalog.Enabled {
		cat, err := store.Open(cfg.resolveCatalogPath())
		if err != nil {
			return nil, fmt.Errorf("opening catalog: %w", err)
		}
		c.catalog = cat
	}
	return c, nil
}

// Catalog returns the conversion catalog, or nil when disabled.
func (c *Converter) Catalog() *store.Catalog {
	return c.catalog
}

// ListDecks returns the catalog's deck records, newest first.
func (c *Converter) ListDecks(ctx context.Context) ([]store.Deck, error) {
	if c.catalog == nil {
		return nil, ErrCatalogDisabled
	}
	return c.catalog.ListDecks(ctx)
}

// Close releases the catalog connection, if any.
func (c *Converter) Close() error {
	if c.catalog != nil {
		return c.catalog.Close()
	}
	return nil
}

// Convert runs the full pipeline for one deck: classify slides, extract
// media, write the JSON document (and optional review workbook), and record
// the run in the catalog when enabled.
func (c *Converter) Convert(ctx context.Context, deckPath string, opts ...ConvertOption) (*Result, error) {
	options := &convertOptions{}
	for _, o := range opts {
		o(options)
	}

	absPath, err := filepath.Abs(deckPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if !strings.EqualFold(filepath.Ext(absPath), ".pptx") {
		return nil, fmt.Errorf("%w: %s", ErrNotADeck, deckPath)
	}

	hash, err := fileHash(absPath)
	if err != nil {
		return nil, fmt.Errorf("hashing deck: %w", err)
	}

	var deckID int64
	if c.catalog != nil {
		if !options.force {
			existing, err := c.catalog.GetDeckByPath(ctx, absPath)
			if err == nil && existing.ContentHash == hash && existing.Status == "complete" {
				slog.Info("convert: deck unchanged, skipping", "deck", filepath.Base(absPath))
				res := &Result{Skipped: true}
				if existing.Summary != "" {
					_ = json.Unmarshal([]byte(existing.Summary), res)
				}
				return res, nil
			}
		}
		deckID, err = c.catalog.UpsertDeck(ctx, store.Deck{
			Path:        absPath,
			Filename:    filepath.Base(absPath),
			ContentHash: hash,
			Status:      "processing",
		})
		if err != nil {
			return nil, fmt.Errorf("recording deck: %w", err)
		}
	}

	res, convErr := c.convert(absPath)

	if c.catalog != nil {
		c.recordOutcome(ctx, deckID, res, convErr)
	}
	return res, convErr
}

func (c *Converter) convert(absPath string) (*Result, error) {
	imagesDir := filepath.Join(c.cfg.AssetsDir, "images")
	audioDir := filepath.Join(c.cfg.AssetsDir, "audio")
	for _, dir := range []string{imagesDir, audioDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating assets directory: %w", err)
		}
	}

	start := time.Now()
	d, err := deck.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer d.Close()
	slog.Info("convert: deck opened", "deck", filepath.Base(absPath), "slides", len(d.Slides()))

	extractor := media.NewExtractor(d, imagesDir, audioDir)
	asm := game.NewAssembler(game.Markers{
		Round1: c.cfg.Round1Title,
		Round2: c.cfg.Round2Title,
		Final:  c.cfg.FinalTitle,
	})

	counter := &mediaCounter{}
	for _, s := range d.Slides() {
		view := &slideView{
			slide:      s,
			extractor:  extractor,
			assetsRoot: c.cfg.AssetsDir,
			counter:    counter,
		}
		asm.Visit(view)
		if view.writeErr != nil {
			return nil, fmt.Errorf("extracting media for slide %d: %w", s.Number, view.writeErr)
		}
	}

	doc := asm.Document()
	if err := export.WriteJSON(doc, c.cfg.OutputPath); err != nil {
		return nil, err
	}
	if c.cfg.ReviewWorkbook != "" {
		if err := export.WriteWorkbook(doc, c.cfg.ReviewWorkbook); err != nil {
			return nil, err
		}
	}

	res := &Result{
		Document:         doc,
		JSONPath:         c.cfg.OutputPath,
		ImagesDir:        imagesDir,
		AudioDir:         audioDir,
		WorkbookPath:     c.cfg.ReviewWorkbook,
		Round1Categories: len(doc.Rounds[0].Categories),
		Round2Categories: len(doc.Rounds[1].Categories),
		Clues:            countClues(doc),
		DroppedSlides:    asm.Dropped(),
		Images:           counter.images,
		AudioClips:       counter.audio,
		FinalPresent:     doc.Final != nil,
	}
	slog.Info("convert: document written",
		"json", res.JSONPath,
		"round1_categories", res.Round1Categories,
		"round2_categories", res.Round2Categories,
		"clues", res.Clues,
		"dropped", res.DroppedSlides,
		"images", res.Images,
		"audio", res.AudioClips,
		"final", res.FinalPresent,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return res, nil
}

// recordOutcome writes the run row and final deck status. Catalog write
// failures do not fail an otherwise completed conversion.
func (c *Converter) recordOutcome(ctx context.Context, deckID int64, res *Result, convErr error) {
	run := store.Run{DeckID: deckID, Status: "complete"}
	if convErr != nil {
		run.Status = "error"
	}
	if res != nil {
		run.Clues = res.Clues
		run.Dropped = res.DroppedSlides
		run.Images = res.Images
		run.AudioClips = res.AudioClips
		run.OutputPath = res.JSONPath
	}
	if _, err := c.catalog.RecordRun(ctx, run); err != nil {
		slog.Warn("convert: recording run failed", "error", err)
	}

	if convErr != nil {
		if err := c.catalog.UpdateDeckStatus(ctx, deckID, "error"); err != nil {
			slog.Warn("convert: updating deck status failed", "error", err)
		}
		return
	}
	summary, _ := json.Marshal(res)
	if err := c.catalog.CompleteDeck(ctx, deckID, string(summary)); err != nil {
		slog.Warn("convert: completing deck failed", "error", err)
	}
}

// slideView adapts a deck slide to the assembler's view. Media extraction
// runs lazily, so only slides that produce output touch the assets tree; a
// failed asset write is remembered and aborts the run after the visit.
type slideView struct {
	slide      *deck.Slide
	extractor  *media.Extractor
	assetsRoot string
	counter    *mediaCounter
	writeErr   error
}

func (v *slideView) Number() int   { return v.slide.Number }
func (v *slideView) Title() string { return v.slide.Title() }
func (v *slideView) Body() string  { return v.slide.Body() }
func (v *slideView) Notes() string { return v.slide.Notes() }

func (v *slideView) Media() (images, audio []game.MediaRef) {
	imgNames, err := v.extractor.Images(v.slide)
	if err != nil {
		v.writeErr = err
		return nil, nil
	}
	audNames, err := v.extractor.Audio(v.slide.Number)
	if err != nil {
		v.writeErr = err
		return nil, nil
	}
	v.counter.images += len(imgNames)
	v.counter.audio += len(audNames)
	return mediaRefs(v.assetsRoot, "images", imgNames), mediaRefs(v.assetsRoot, "audio", audNames)
}

type mediaCounter struct {
	images int
	audio  int
}

// mediaRefs builds the JSON reference paths. These are document-relative
// with forward slashes regardless of platform.
func mediaRefs(root, kind string, names []string) []game.MediaRef {
	if len(names) == 0 {
		return nil
	}
	refs := make([]game.MediaRef, len(names))
	for i, n := range names {
		refs[i] = game.MediaRef{Src: root + "/" + kind + "/" + n}
	}
	return refs
}

func countClues(doc *game.Document) int {
	total := 0
	for _, round := range doc.Rounds {
		for _, cat := range round.Categories {
			total += len(cat.Clues)
		}
	}
	return total
}

// fileHash computes the SHA-256 hash of a file's content.
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
