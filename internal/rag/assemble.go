package rag

import (
	"fmt"
	"strings"

	"github.com/akolanti/ProductChat/internal/domain/commonModels"
)

const chunkSeparator = "\n\n---\n\n"

// BuildContext turns retrieved chunks into the prompt context block and the
// source list shown to the user. Repeated document names are marked as
// excerpts so two passages from one document stay distinguishable.
// Pure and synchronous - no failure mode.
func BuildContext(chunks []commonModels.SearchResult) (string, []commonModels.Source) {
	if len(chunks) == 0 {
		return "", nil
	}

	blocks := make([]string, 0, len(chunks))
	sources := make([]commonModels.Source, 0, len(chunks))
	seen := make(map[string]bool, len(chunks))

	for _, c := range chunks {
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", c.DocumentName, c.Content))

		title := c.DocumentName
		if seen[title] {
			title = title + " (excerpt)"
		} else {
			seen[c.DocumentName] = true
		}
		sources = append(sources, commonModels.Source{Title: title})
	}

	return strings.Join(blocks, chunkSeparator), sources
}
