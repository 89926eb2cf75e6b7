package extractor

import (
	"bytes"
	"strings"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/section"
	"github.com/fumiama/go-docx"
)

// DOCX extracts a single flat text stream from the document body. No
// page or section structure is recoverable from the format, so the
// whole stream is chunked with no headings.
type DOCX struct {
	MaxSectionLength int
}

func (e *DOCX) Extract(data []byte) ([]section.Section, error) {
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Format: FormatDOCX, Err: err}
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if text := paragraphText(para); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	content := strings.Join(paragraphs, "\n\n")
	return flatSections(content, e.MaxSectionLength), nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// flatSections chunks an unstructured text stream. Shared by the
// DOCX, CSV, and plain-text extractors.
func flatSections(content string, maxLen int) []section.Section {
	parts := chunker.Chunk(content, maxLen)
	if len(parts) > 1 {
		sections := make([]section.Section, 0, len(parts))
		for k, p := range parts {
			sections = append(sections, section.Section{
				Content: p,
				Part:    k + 1,
				Total:   len(parts),
			})
		}
		return sections
	}
	return []section.Section{{Content: content}}
}
