package chunker

import (
	"strings"
)

// Chunk is a bounded window of source text with positional metadata.
// SequenceIndex is monotonic across the whole document and is used for
// snippet ordering and deterministic tie-breaking, never for ranking.
type Chunk struct {
	Text          string
	SequenceIndex int
	Page          *int // nil for non-paginated sources
}

// Page is one page of extracted text from a paginated source (e.g. PDF).
type Page struct {
	Number int
	Text   string
}

const (
	// DefaultChunkSize is the target window size in runes.
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the overlap carried between consecutive windows.
	DefaultChunkOverlap = 200
)

// PageBreak separates pages when paginated text travels as a single string.
const PageBreak = "\f"

// Chunker splits raw document text into overlapping windows. It is stateless
// and deterministic: identical input always yields identical chunks.
type Chunker struct {
	chunkSize int
	overlap   int
}

func New() *Chunker {
	return NewWithSize(DefaultChunkSize, DefaultChunkOverlap)
}

func NewWithSize(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split chunks a non-paginated source (web page, transcript). Every chunk
// carries a nil Page. Empty or whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []Chunk {
	var chunks []Chunk
	seq := 0
	for _, window := range c.windows(text) {
		chunks = append(chunks, Chunk{Text: window, SequenceIndex: seq})
		seq++
	}
	return chunks
}

// SplitPages chunks a paginated source page by page, so a window never mixes
// text from two pages. SequenceIndex keeps counting across pages.
func (c *Chunker) SplitPages(pages []Page) []Chunk {
	var chunks []Chunk
	seq := 0
	for _, page := range pages {
		pageNum := page.Number
		for _, window := range c.windows(page.Text) {
			chunks = append(chunks, Chunk{Text: window, SequenceIndex: seq, Page: &pageNum})
			seq++
		}
	}
	return chunks
}

// SplitPaginated chunks a single string whose pages are delimited by
// PageBreak (form feed), numbering pages from 1.
func (c *Chunker) SplitPaginated(text string) []Chunk {
	parts := strings.Split(text, PageBreak)
	pages := make([]Page, len(parts))
	for i, part := range parts {
		pages[i] = Page{Number: i + 1, Text: part}
	}
	return c.SplitPages(pages)
}

// windows slices text into overlapping windows, preferring paragraph, then
// sentence, then word boundaries near the window end, falling back to a hard
// cut. Consecutive windows share c.overlap runes, so no text is lost even
// when a break lands early.
func (c *Chunker) windows(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)
	if total <= c.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var out []string
	start := 0
	for start < total {
		end := start + c.chunkSize
		if end >= total {
			end = total
		} else {
			end = c.breakPoint(runes, start, end)
		}

		window := strings.TrimSpace(string(runes[start:end]))
		if window != "" {
			out = append(out, window)
		}

		if end >= total {
			break
		}
		next := end - c.overlap
		if next <= start {
			// Degenerate size/overlap combination; forfeit the overlap
			// rather than loop forever.
			next = end
		}
		start = next
	}
	return out
}

// breakPoint searches backwards within the last fifth of the window for the
// best boundary: paragraph break, then sentence end, then any whitespace.
// Returns the hard cut position when nothing suitable is found.
func (c *Chunker) breakPoint(runes []rune, start, end int) int {
	lookback := c.chunkSize / 5
	floor := end - lookback
	if floor <= start {
		floor = start + 1
	}

	for i := end - 1; i >= floor; i-- {
		if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
			return i + 1
		}
	}
	for i := end - 1; i >= floor; i-- {
		if isSentenceEnd(runes, i) {
			return i + 1
		}
	}
	for i := end - 1; i >= floor; i-- {
		if runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' {
			return i + 1
		}
	}
	return end
}

func isSentenceEnd(runes []rune, i int) bool {
	if runes[i] != '.' && runes[i] != '?' && runes[i] != '!' {
		return false
	}
	// Needs trailing whitespace so "3.14" does not count.
	return i+1 < len(runes) && (runes[i+1] == ' ' || runes[i+1] == '\n')
}
