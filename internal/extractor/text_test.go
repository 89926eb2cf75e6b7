package extractor

import (
	"strings"
	"testing"
)

func TestPlaintext_SmallInputSingleSection(t *testing.T) {
	e := &Plaintext{MaxSectionLength: 2500}
	sections, err := e.Extract([]byte("id,name\n1,alice\n2,bob\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	sec := sections[0]
	if sec.Heading != "" || sec.Part != 0 || sec.Total != 0 {
		t.Errorf("expected bare section, got %+v", sec)
	}
	if sec.Content != "id,name\n1,alice\n2,bob\n" {
		t.Errorf("expected content unchanged, got %q", sec.Content)
	}
}

func TestPlaintext_LargeInputChunked(t *testing.T) {
	content := strings.Repeat("row,value\n", 600) // 6000 bytes
	e := &Plaintext{MaxSectionLength: 2500}
	sections, err := e.Extract([]byte(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	var rebuilt strings.Builder
	for i, sec := range sections {
		if sec.Heading != "" {
			t.Errorf("section %d: expected no heading, got %q", i, sec.Heading)
		}
		if sec.Part != i+1 || sec.Total != 3 {
			t.Errorf("section %d: expected part %d/3, got %d/%d", i, i+1, sec.Part, sec.Total)
		}
		rebuilt.WriteString(sec.Content)
	}
	if rebuilt.String() != content {
		t.Errorf("concatenated sections do not reproduce input")
	}
}

func TestPlaintext_EmptyInput(t *testing.T) {
	e := &Plaintext{MaxSectionLength: 2500}
	sections, err := e.Extract(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Content != "" {
		t.Errorf("expected empty content, got %q", sections[0].Content)
	}
}
