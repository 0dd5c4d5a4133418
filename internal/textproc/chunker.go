package textproc

import (
	"errors"
	"fmt"
)

const (
	// DefaultChunkSize is the maximum chunk length in characters.
	DefaultChunkSize = 1000
	// DefaultOverlap is the number of characters shared by consecutive chunks.
	DefaultOverlap = 100
)

// ErrInvalidChunking is returned when the chunk size and overlap cannot
// guarantee forward progress.
var ErrInvalidChunking = errors.New("invalid chunking parameters")

// Chunk splits text into ordered, overlapping chunks of at most chunkSize
// characters. Chunk ends are moved back to the nearest space so words are not
// cut in half; when a window holds no space the chunk is cut at the window end.
//
// Sizes and offsets are counted in runes, not bytes.
func Chunk(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidChunking, chunkSize)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", ErrInvalidChunking, overlap)
	}
	if overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", ErrInvalidChunking, overlap, chunkSize)
	}

	if text == "" {
		return nil, nil
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}, nil
	}

	bounds := spans(runes, chunkSize, overlap)
	chunks := make([]string, 0, len(bounds))
	for _, b := range bounds {
		chunks = append(chunks, string(runes[b.start:b.end]))
	}
	return chunks, nil
}

// span is a half-open rune range [start, end) of the chunked text.
type span struct {
	start, end int
}

// spans computes chunk boundaries. Parameters must already be validated.
func spans(runes []rune, chunkSize, overlap int) []span {
	var out []span
	start := 0
	for start < len(runes) {
		end := min(start+chunkSize, len(runes))

		if end < len(runes) {
			cut := end
			for cut > start && runes[cut] != ' ' {
				cut--
			}
			if cut > start {
				end = cut
			}
		}

		out = append(out, span{start: start, end: end})

		if end == len(runes) {
			break
		}

		// start must strictly increase or the loop never ends
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// ChunkDefault splits text with DefaultChunkSize and DefaultOverlap.
func ChunkDefault(text string) []string {
	// The defaults are valid, so the error is always nil.
	chunks, _ := Chunk(text, DefaultChunkSize, DefaultOverlap)
	return chunks
}
