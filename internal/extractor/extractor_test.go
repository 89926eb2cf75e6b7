package extractor

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		filename   string
		wantFormat Format
		wantType   string
	}{
		{"notes.md", FormatMarkdown, "markdown"},
		{"notes.markdown", FormatMarkdown, "markdown"},
		{"REPORT.MD", FormatMarkdown, "markdown"},
		{"paper.pdf", FormatPDF, "pdf"},
		{"letter.docx", FormatDOCX, "docx"},
		{"sheet.xlsx", FormatExcel, "excel"},
		{"legacy.xls", FormatExcel, "excel"},
		{"rows.csv", FormatCSV, "csv"},
		{"page.html", FormatHTML, "html"},
		{"page.htm", FormatHTML, "html"},
		{"readme.txt", FormatText, "txt"},
		{"archive.xyz", FormatText, "xyz"},
		{"noextension", FormatText, "unknown"},
	}
	for _, tt := range tests {
		format, fileType := Detect(tt.filename)
		if format != tt.wantFormat {
			t.Errorf("%s: expected format %q, got %q", tt.filename, tt.wantFormat, format)
		}
		if fileType != tt.wantType {
			t.Errorf("%s: expected file type %q, got %q", tt.filename, tt.wantType, fileType)
		}
	}
}

func TestExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"sheet.xlsx", "xlsx"},
		{"REPORT.MD", "md"},
		{"page.htm", "htm"},
		{"archive.xyz", "xyz"},
		{"noextension", ""},
	}
	for _, tt := range tests {
		if got := Ext(tt.filename); got != tt.want {
			t.Errorf("%s: expected extension %q, got %q", tt.filename, tt.want, got)
		}
	}
}

func TestFor_UnknownFormatFallsBackToPlaintext(t *testing.T) {
	e := For(Format("bogus"), 100)
	if _, ok := e.(*Plaintext); !ok {
		t.Errorf("expected plaintext fallback, got %T", e)
	}
}
