package chunker

import "strings"

// Chunk splits raw document text into overlapping windows suitable for
// embedding. Whitespace runs are collapsed to single spaces first, so the
// output only depends on the words in the input. Windows are size characters,
// extended forward to the next space so no word is cut in half, and
// consecutive windows share overlap characters.
// Pure function: identical input always yields identical chunks.
func Chunk(text string, size int, overlap int) []string {
	trimmed := strings.Join(strings.Fields(text), " ")
	if trimmed == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(trimmed) {
		end := start + size
		if end < len(trimmed) {
			//push the boundary to the next space so chunks end on whole words;
			//no space left means the window just runs to the raw boundary
			if next := strings.Index(trimmed[end:], " "); next != -1 {
				end += next + 1
			}
		}

		sliceEnd := min(end, len(trimmed))
		if chunk := strings.TrimSpace(trimmed[start:sliceEnd]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		//the unclamped end drives the advance, which is what terminates the
		//loop once the final window has run past the text
		start = end - overlap
		if start >= len(trimmed) {
			break
		}
	}
	return chunks
}
