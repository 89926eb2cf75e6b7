package extractor

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPDF_InvalidDocument(t *testing.T) {
	e := &PDF{MaxSectionLength: 2500}
	_, err := e.Extract([]byte("this is not a pdf"))
	if err == nil {
		t.Fatal("expected an error for invalid pdf bytes")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExtractionError, got %T: %v", err, err)
	}
	if extErr.Format != FormatPDF {
		t.Errorf("expected format %q, got %q", FormatPDF, extErr.Format)
	}
}

func TestPDF_ThreePagesInOrder(t *testing.T) {
	data := pdfWithPages(t, []string{"alpha", "beta", "gamma"})

	e := &PDF{MaxSectionLength: 2500}
	sections, err := e.Extract(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	for i, word := range []string{"alpha", "beta", "gamma"} {
		sec := sections[i]
		want := fmt.Sprintf("Page %d", i+1)
		if sec.Heading != want {
			t.Errorf("section %d: expected heading %q, got %q", i, want, sec.Heading)
		}
		if sec.PageNumber != i+1 {
			t.Errorf("section %d: expected page number %d, got %d", i, i+1, sec.PageNumber)
		}
		if sec.Part != 0 || sec.Total != 0 {
			t.Errorf("section %d: expected no part tagging, got %d/%d", i, sec.Part, sec.Total)
		}
		// Glyph spacing varies by text-run granularity; compare with
		// spaces stripped.
		if got := strings.ReplaceAll(sec.Content, " ", ""); got != word {
			t.Errorf("section %d: expected page text %q, got %q", i, word, sec.Content)
		}
	}
}

// pdfWithPages builds a minimal document with one text run per page.
func pdfWithPages(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	kids := make([]string, 0, len(pageTexts))
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objs := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
			strings.Join(kids, " "), len(pageTexts)),
		"3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
	}
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET\n", text)
		objs = append(objs,
			fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>\nendobj\n", 4+2*i, 5+2*i),
			fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%sendstream\nendobj\n",
				5+2*i, len(stream), stream),
		)
	}

	var body strings.Builder
	body.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objs))
	for _, obj := range objs {
		offsets = append(offsets, body.Len())
		body.WriteString(obj)
	}

	var b strings.Builder
	b.WriteString(body.String())
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objs)+1, body.Len())
	return []byte(b.String())
}

func TestPageSections_ShortPages(t *testing.T) {
	for page := 1; page <= 3; page++ {
		secs := pageSections(page, fmt.Sprintf("text of page %d", page), 2500)
		if len(secs) != 1 {
			t.Fatalf("page %d: expected 1 section, got %d", page, len(secs))
		}
		want := fmt.Sprintf("Page %d", page)
		if secs[0].Heading != want {
			t.Errorf("page %d: expected heading %q, got %q", page, want, secs[0].Heading)
		}
		if secs[0].PageNumber != page {
			t.Errorf("page %d: expected page number %d, got %d", page, page, secs[0].PageNumber)
		}
		if secs[0].Part != 0 || secs[0].Total != 0 {
			t.Errorf("page %d: expected no part tagging, got %d/%d", page, secs[0].Part, secs[0].Total)
		}
	}
}

func TestPageSections_LongPageSplitsIntoParts(t *testing.T) {
	content := strings.Repeat("x", 6001)
	secs := pageSections(2, content, 2500)

	if len(secs) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(secs))
	}

	var rebuilt strings.Builder
	for i, sec := range secs {
		want := fmt.Sprintf("Page 2 - Part %d", i+1)
		if sec.Heading != want {
			t.Errorf("part %d: expected heading %q, got %q", i, want, sec.Heading)
		}
		if sec.PageNumber != 2 {
			t.Errorf("part %d: expected page number 2, got %d", i, sec.PageNumber)
		}
		if sec.Part != i+1 || sec.Total != 3 {
			t.Errorf("part %d: expected part %d/3, got %d/%d", i, i+1, sec.Part, sec.Total)
		}
		rebuilt.WriteString(sec.Content)
	}
	if rebuilt.String() != content {
		t.Errorf("concatenated parts do not reproduce the page text")
	}
}

func TestExtractionError_Message(t *testing.T) {
	err := &ExtractionError{Format: FormatPDF, Page: 4, Err: errors.New("bad stream")}
	if got := err.Error(); !strings.Contains(got, "page 4") {
		t.Errorf("expected page index in message, got %q", got)
	}
	plain := &ExtractionError{Format: FormatExcel, Err: errors.New("bad zip")}
	if got := plain.Error(); strings.Contains(got, "page") {
		t.Errorf("expected no page index in message, got %q", got)
	}
}
