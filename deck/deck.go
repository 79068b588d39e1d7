// Package deck reads PPTX containers: ordered slide enumeration, best-effort
// text field extraction, and media correlation through per-slide relationship
// manifests.
package deck

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// Deck is an open PPTX container. It is read-only; the underlying archive
// stays open until Close so slides can resolve media parts lazily.
type Deck struct {
	path   string
	reader *zip.ReadCloser
	index  map[string]*zip.File
	slides []*Slide
}

// Open opens the deck at path and enumerates its slides in ascending slide
// number order.
func Open(path string) (*Deck, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening deck: %w", err)
	}

	d := &Deck{
		path:   path,
		reader: r,
		index:  make(map[string]*zip.File, len(r.File)),
	}
	for _, f := range r.File {
		d.index[f.Name] = f
	}

	// Collect slide parts (ppt/slides/slide1.xml, slide2.xml, ...)
	slideParts := make(map[int]*zip.File)
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			if n := slideNumber(f.Name); n > 0 {
				slideParts[n] = f
			}
		}
	}
	if len(slideParts) == 0 {
		r.Close()
		return nil, fmt.Errorf("no slide parts found in %s", path)
	}

	nums := make([]int, 0, len(slideParts))
	for n := range slideParts {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	for _, n := range nums {
		data, err := readZipFile(slideParts[n])
		if err != nil {
			slog.Debug("deck: slide part unreadable", "slide", n, "error", err)
			continue
		}
		s, err := parseSlide(d, n, data)
		if err != nil {
			slog.Debug("deck: slide XML malformed", "slide", n, "error", err)
			continue
		}
		d.slides = append(d.slides, s)
	}
	if len(d.slides) == 0 {
		r.Close()
		return nil, fmt.Errorf("no readable slides in %s", path)
	}

	return d, nil
}

// Close closes the underlying archive.
func (d *Deck) Close() error {
	return d.reader.Close()
}

// Path returns the container's file path.
func (d *Deck) Path() string {
	return d.path
}

// Slides returns the deck's slides in deck order.
func (d *Deck) Slides() []*Slide {
	return d.slides
}

// HasPart reports whether the container holds a part with the given name.
func (d *Deck) HasPart(name string) bool {
	_, ok := d.index[name]
	return ok
}

// ReadPart returns the raw bytes of a container part.
func (d *Deck) ReadPart(name string) ([]byte, error) {
	f, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("part %s not in container", name)
	}
	return readZipFile(f)
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// slideNumber extracts N from "ppt/slides/slideN.xml"; 0 if the name does
// not follow that shape exactly. A part like "slide1extra.xml" must not
// collide with "slide1.xml".
func slideNumber(name string) int {
	name = strings.TrimPrefix(name, "ppt/slides/slide")
	name = strings.TrimSuffix(name, ".xml")
	num, err := strconv.Atoi(name)
	if err != nil || num <= 0 {
		return 0
	}
	return num
}
