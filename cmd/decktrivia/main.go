// Command decktrivia converts Jeopardy authoring decks (PPTX) into trivia
// content JSON plus an extracted assets tree.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
