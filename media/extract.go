// Package media writes slide media into the assets tree under deterministic
// names.
package media

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"decktrivia/deck"
)

// Extractor copies picture and audio parts out of a deck. Reads are
// best-effort per item: a part that cannot be resolved or read just yields
// fewer results. A failed file write is an I/O fault and is returned.
type Extractor struct {
	deck      *deck.Deck
	imagesDir string
	audioDir  string
}

// NewExtractor returns an extractor writing into the given directories,
// which must already exist.
func NewExtractor(d *deck.Deck, imagesDir, audioDir string) *Extractor {
	return &Extractor{deck: d, imagesDir: imagesDir, audioDir: audioDir}
}

// Images writes every picture on the slide to the images directory and
// returns the generated file names. Names are slideNNN_imgNN.ext with the
// image number restarting at 1 on every slide.
func (e *Extractor) Images(s *deck.Slide) ([]string, error) {
	var names []string
	num := 0
	for _, pic := range s.Pictures() {
		data, err := e.deck.ReadPart(pic.Part)
		if err != nil {
			slog.Debug("media: picture part unreadable", "slide", s.Number, "part", pic.Part, "error", err)
			continue
		}
		num++
		name := fmt.Sprintf("slide%03d_img%02d.%s", s.Number, num, pic.Ext)
		if err := os.WriteFile(filepath.Join(e.imagesDir, name), data, 0o644); err != nil {
			return nil, fmt.Errorf("writing image %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}

// Audio writes every audio part referenced by the slide's relationship
// manifest to the audio directory as slideNNN_<original basename> and
// returns the generated file names.
func (e *Extractor) Audio(number int) ([]string, error) {
	var names []string
	for _, target := range e.deck.AudioTargets(number) {
		data, err := e.deck.ReadPart(target)
		if err != nil {
			slog.Debug("media: audio part unreadable", "slide", number, "part", target, "error", err)
			continue
		}
		name := fmt.Sprintf("slide%03d_%s", number, path.Base(target))
		if err := os.WriteFile(filepath.Join(e.audioDir, name), data, 0o644); err != nil {
			return nil, fmt.Errorf("writing audio %s: %w", name, err)
		}
		names = append(names, name)
	}
	return names, nil
}
