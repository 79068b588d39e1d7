// Package export serializes the game content document.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"decktrivia/game"
)

// WriteJSON writes the document as indented UTF-8 JSON. HTML escaping is
// disabled so question text stays readable.
func WriteJSON(doc *game.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encoding document: %w", err)
	}
	return f.Close()
}
