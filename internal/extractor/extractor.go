// Package extractor turns raw document bytes into ordered sections.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docslice/internal/section"
)

// Format identifies a supported document format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatExcel    Format = "excel"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// Extractor converts decoded/raw document bytes into an ordered list
// of sections, length-bounded by the configured section limit.
type Extractor interface {
	Extract(data []byte) ([]section.Section, error)
}

// Ext returns the lowercased filename extension without its dot, or
// "" when the name has none. Extraction-failure responses report this
// raw extension; the file type recorded on the document row comes
// from Detect instead.
func Ext(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// Detect maps a filename to its format and the file type string
// recorded on the document. Unrecognized extensions fall back to the
// plain-text extractor and record the literal extension (or "unknown"
// when the name has none).
func Detect(filename string) (Format, string) {
	ext := Ext(filename)
	switch ext {
	case "md", "markdown":
		return FormatMarkdown, "markdown"
	case "pdf":
		return FormatPDF, "pdf"
	case "docx":
		return FormatDOCX, "docx"
	case "xlsx", "xls":
		return FormatExcel, "excel"
	case "csv":
		return FormatCSV, "csv"
	case "html", "htm":
		return FormatHTML, "html"
	case "txt":
		return FormatText, "txt"
	case "":
		return FormatText, "unknown"
	default:
		return FormatText, ext
	}
}

// table is the closed dispatch table from format to extractor. CSV
// and plain text share the whole-stream extractor; they differ only
// in the recorded file type.
var table = map[Format]func(maxLen int) Extractor{
	FormatMarkdown: func(maxLen int) Extractor { return &Markdown{MaxSectionLength: maxLen} },
	FormatPDF:      func(maxLen int) Extractor { return &PDF{MaxSectionLength: maxLen} },
	FormatDOCX:     func(maxLen int) Extractor { return &DOCX{MaxSectionLength: maxLen} },
	FormatExcel:    func(maxLen int) Extractor { return &Excel{MaxSectionLength: maxLen} },
	FormatCSV:      func(maxLen int) Extractor { return &Plaintext{MaxSectionLength: maxLen} },
	FormatHTML:     func(maxLen int) Extractor { return &HTML{MaxSectionLength: maxLen} },
	FormatText:     func(maxLen int) Extractor { return &Plaintext{MaxSectionLength: maxLen} },
}

// For returns the extractor for a format. Formats outside the table
// get the plain-text extractor, matching the fallback in Detect.
func For(f Format, maxLen int) Extractor {
	if mk, ok := table[f]; ok {
		return mk(maxLen)
	}
	return &Plaintext{MaxSectionLength: maxLen}
}

// ExtractionError is a format-specific parse failure. Page is the
// 1-indexed page that failed to render, or 0 when the failure was not
// page-scoped.
type ExtractionError struct {
	Format Format
	Page   int
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extract %s page %d: %v", e.Format, e.Page, e.Err)
	}
	return fmt.Sprintf("extract %s: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
