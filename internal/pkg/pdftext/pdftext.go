// Package pdftext extracts plain text from PDF files page by page so page
// numbers survive into downstream chunking.
package pdftext

import (
	"fmt"
	"strings"

	"ai-studymate-be/pkg/chunker"

	"github.com/ledongthuc/pdf"
)

// ExtractPages reads every page of the PDF at path. Pages whose text cannot
// be decoded are kept as empty entries so page numbering stays aligned.
func ExtractPages(path string) ([]chunker.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]chunker.Page, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, chunker.Page{Number: i})
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			pages = append(pages, chunker.Page{Number: i})
			continue
		}
		pages = append(pages, chunker.Page{Number: i, Text: strings.TrimSpace(text)})
	}
	return pages, nil
}

// JoinPages renders pages as a single string with form feed separators,
// the storage format for paginated raw text.
func JoinPages(pages []chunker.Page) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = p.Text
	}
	return strings.Join(parts, chunker.PageBreak)
}
