package rag

const (
	// DefaultChunkSize is the window length, in runes, of a chunk.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is how many runes consecutive chunks share.
	DefaultChunkOverlap = 200
)

// SplitText splits text into fixed-size windows with the given overlap,
// measured in runes. Boundaries are deterministic for a given
// (text, size, overlap) triple. Out-of-range parameters fall back to the
// defaults so a misconfigured chunker can never loop or panic.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 || overlap >= size {
		overlap = DefaultChunkOverlap
		if overlap >= size {
			overlap = size / 5
		}
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := size - overlap
	chunks := make([]string, 0, len(runes)/step+1)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
