package citation

import (
	"fmt"
	"sort"
	"strings"

	"ai-studymate-be/pkg/rag/retriever"

	"github.com/google/uuid"
)

const snippetLimit = 200

// Citation is one numbered source entry shown alongside an answer. Pages
// collects every distinct page the cited document contributed, ascending.
type Citation struct {
	Number      int       `json:"number"`
	DocumentID  uuid.UUID `json:"document_id"`
	DisplayName string    `json:"display_name"`
	Pages       []int     `json:"pages,omitempty"`
	Snippet     string    `json:"snippet"`
}

// Map assigns citation numbers in first-seen document order over the ranked
// chunks and renders the context block fed to the language model. The same
// numbering backs both, so "[2]" in the generated answer always refers to
// Citations[1].
func Map(chunks []retriever.RetrievedChunk) ([]Citation, string) {
	var (
		citations []Citation
		byDoc     = make(map[uuid.UUID]int)
		pages     = make(map[uuid.UUID]map[int]struct{})
		b         strings.Builder
	)

	for _, chunk := range chunks {
		pos, seen := byDoc[chunk.DocumentID]
		if !seen {
			pos = len(citations)
			byDoc[chunk.DocumentID] = pos
			citations = append(citations, Citation{
				Number:      pos + 1,
				DocumentID:  chunk.DocumentID,
				DisplayName: chunk.DisplayName,
				Snippet:     snippet(chunk.Text),
			})
			pages[chunk.DocumentID] = make(map[int]struct{})
		}
		if chunk.Page != nil {
			pages[chunk.DocumentID][*chunk.Page] = struct{}{}
		}

		b.WriteString(fmt.Sprintf("Source [%d]: %s", pos+1, chunk.DisplayName))
		if chunk.Page != nil {
			b.WriteString(fmt.Sprintf(" (Page %d)", *chunk.Page))
		}
		b.WriteString("\n---\n")
		b.WriteString(chunk.Text)
		b.WriteString("\n---\n\n")
	}

	for i := range citations {
		set := pages[citations[i].DocumentID]
		if len(set) == 0 {
			continue
		}
		list := make([]int, 0, len(set))
		for p := range set {
			list = append(list, p)
		}
		sort.Ints(list)
		citations[i].Pages = list
	}

	return citations, b.String()
}

func snippet(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + "..."
}
