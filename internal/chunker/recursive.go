package chunker

import (
	"strconv"
	"strings"

	"hrassistant/internal/domain"
)

// RecursiveChunker splits text into overlapping chunks, preferring
// paragraph boundaries, then line boundaries, then word boundaries.
// Documents containing table blocks are kept whole so a table is never
// split mid-row.
type RecursiveChunker struct {
	chunkSize  int
	overlap    int
	separators []string
}

func NewRecursiveChunker(chunkSize, overlap int) *RecursiveChunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &RecursiveChunker{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", " "},
	}
}

func (c *RecursiveChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	trimmed := strings.TrimSpace(document.Content)
	if trimmed == "" {
		return nil, nil
	}
	var texts []string
	if hasTableBlock(document.Content) {
		texts = []string{trimmed}
	} else {
		texts = c.splitText(document.Content, c.separators)
	}
	chunks := make([]domain.Chunk, 0, len(texts))
	for i, text := range texts {
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(i),
			Text:       text,
			Source:     document.Source,
			Index:      i,
		})
	}
	return chunks, nil
}

func hasTableBlock(text string) bool {
	return strings.Contains(text, "│") || strings.Contains(strings.ToUpper(text), "TABLE")
}

func (c *RecursiveChunker) splitText(text string, separators []string) []string {
	if len(text) <= c.chunkSize {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return nil
	}
	sep, rest := pickSeparator(text, separators)
	if sep == "" {
		return c.hardSplit(text)
	}
	var pieces []string
	for _, part := range strings.Split(text, sep) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		if len(part) > c.chunkSize {
			pieces = append(pieces, c.splitText(part, rest)...)
		} else {
			pieces = append(pieces, part)
		}
	}
	return c.merge(pieces, sep)
}

// pickSeparator returns the first separator present in the text and the
// remaining lower-priority separators for recursion.
func pickSeparator(text string, separators []string) (string, []string) {
	for i, sep := range separators {
		if strings.Contains(text, sep) {
			return sep, separators[i+1:]
		}
	}
	return "", nil
}

// merge greedily packs pieces into chunks of at most chunkSize characters,
// carrying a tail of up to overlap characters into the next chunk.
func (c *RecursiveChunker) merge(pieces []string, sep string) []string {
	var out []string
	var cur []string
	curLen := 0
	for _, p := range pieces {
		pLen := len(p) + len(sep)
		if curLen+pLen > c.chunkSize && len(cur) > 0 {
			if s := strings.TrimSpace(strings.Join(cur, sep)); s != "" {
				out = append(out, s)
			}
			for curLen > c.overlap && len(cur) > 1 {
				curLen -= len(cur[0]) + len(sep)
				cur = cur[1:]
			}
			if curLen > c.overlap {
				cur = nil
				curLen = 0
			}
		}
		cur = append(cur, p)
		curLen += pLen
	}
	if len(cur) > 0 {
		if s := strings.TrimSpace(strings.Join(cur, sep)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// hardSplit cuts text into fixed windows when no separator applies.
func (c *RecursiveChunker) hardSplit(text string) []string {
	step := c.chunkSize - c.overlap
	var out []string
	for start := 0; start < len(text); start += step {
		end := start + c.chunkSize
		if end > len(text) {
			end = len(text)
		}
		out = append(out, text[start:end])
		if end == len(text) {
			break
		}
	}
	return out
}
