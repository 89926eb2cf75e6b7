package extractor

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/section"
	pdflib "github.com/ledongthuc/pdf"
)

// PDF extracts one logical unit per page, in page order.
type PDF struct {
	MaxSectionLength int
}

func (e *PDF) Extract(data []byte) ([]section.Section, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Format: FormatPDF, Err: err}
	}

	var sections []section.Section
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return nil, &ExtractionError{Format: FormatPDF, Page: i, Err: fmt.Errorf("page is missing")}
		}
		content, err := pageText(page)
		if err != nil {
			return nil, &ExtractionError{Format: FormatPDF, Page: i, Err: err}
		}
		sections = append(sections, pageSections(i, content, e.MaxSectionLength)...)
	}
	return sections, nil
}

// pageText joins a page's text runs in layout order with single
// spaces. The pdf library panics on some malformed content streams,
// so the panic is converted into a per-page error here.
func pageText(page pdflib.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render page content: %v", r)
		}
	}()

	content := page.Content()
	runs := make([]string, 0, len(content.Text))
	for _, t := range content.Text {
		runs = append(runs, t.S)
	}
	return strings.TrimSpace(strings.Join(runs, " ")), nil
}

// pageSections shapes one page's text into sections. Pages over the
// bound split into parts headed "Page {i} - Part {k}"; otherwise the
// page yields a single "Page {i}" section. Every section carries the
// page number directly — persistence re-derives its own copy from the
// heading text instead of trusting this field.
func pageSections(pageNum int, content string, maxLen int) []section.Section {
	parts := chunker.Chunk(content, maxLen)
	if len(parts) > 1 {
		sections := make([]section.Section, 0, len(parts))
		for k, p := range parts {
			sections = append(sections, section.Section{
				Content:    p,
				Heading:    fmt.Sprintf("Page %d - Part %d", pageNum, k+1),
				Part:       k + 1,
				Total:      len(parts),
				PageNumber: pageNum,
			})
		}
		return sections
	}
	return []section.Section{{
		Content:    content,
		Heading:    fmt.Sprintf("Page %d", pageNum),
		PageNumber: pageNum,
	}}
}
