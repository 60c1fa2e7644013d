// Package splitter breaks documents into bounded, overlapping chunks
// for embedding.
//
// The splitting policy is recursive-boundary: paragraph breaks first,
// then line breaks, then word breaks, then arbitrary character
// positions, falling back to a coarser boundary only when a finer one
// cannot satisfy the size bound. Sizes are measured in characters
// (runes), matching the rest of the pipeline.
package splitter

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/dietcoach-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 700

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// boundary separators, finest meaningful boundary first.
// The empty string is the character-level fallback.
var separators = []string{"\n\n", "\n", " ", ""}

// Splitter splits document bodies into bounded, overlapping chunks.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split breaks each document body into chunks. Every chunk inherits the
// parent document's metadata unchanged; positions are ordinal within
// the document. A document shorter than the chunk size yields exactly
// one chunk equal to its body.
func (s *Splitter) Split(docs []domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	for _, doc := range docs {
		if doc.Body == "" {
			continue
		}
		for i, piece := range s.splitText(doc.Body, separators) {
			chunks = append(chunks, domain.Chunk{
				ID:       uuid.New().String(),
				Content:  piece,
				Position: i,
				Meta:     doc.Meta,
			})
		}
	}
	return chunks
}

// splitText splits text recursively along seps.
func (s *Splitter) splitText(text string, seps []string) []string {
	if runeLen(text) <= s.chunkSize {
		return []string{text}
	}

	// Pick the finest separator present in the text.
	sep := ""
	var rest []string
	for i, candidate := range seps {
		if candidate == "" {
			break
		}
		if strings.Contains(text, candidate) {
			sep = candidate
			rest = seps[i+1:]
			break
		}
	}

	if sep == "" {
		return s.hardSplit(text)
	}

	var final []string
	var pending []string
	for _, piece := range strings.Split(text, sep) {
		if runeLen(piece) < s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		// An oversized piece: flush what we have, then recurse into it
		// with the finer separators.
		final = append(final, s.merge(pending, sep)...)
		pending = nil
		final = append(final, s.splitText(piece, rest)...)
	}
	final = append(final, s.merge(pending, sep)...)
	return final
}

// merge greedily joins small splits back together up to the chunk size,
// carrying up to the configured overlap into the next chunk.
func (s *Splitter) merge(splits []string, sep string) []string {
	sepLen := runeLen(sep)
	var out []string
	var window []string
	total := 0

	flush := func() {
		if doc := strings.TrimSpace(strings.Join(window, sep)); doc != "" {
			out = append(out, doc)
		}
	}

	for _, piece := range splits {
		pieceLen := runeLen(piece)
		join := 0
		if len(window) > 0 {
			join = sepLen
		}
		if total+pieceLen+join > s.chunkSize && len(window) > 0 {
			flush()
			// Slide the window forward until the retained tail fits the
			// overlap and leaves room for the next piece.
			for len(window) > 0 && (total > s.overlap || total+pieceLen+sepLen > s.chunkSize) {
				head := runeLen(window[0])
				if len(window) > 1 {
					head += sepLen
				}
				total -= head
				window = window[1:]
			}
		}
		if len(window) > 0 {
			total += sepLen
		}
		window = append(window, piece)
		total += pieceLen
	}
	flush()
	return out
}

// hardSplit cuts text into fixed character windows with overlap.
// Last resort when no boundary separator is available.
func (s *Splitter) hardSplit(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.overlap
	var out []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
