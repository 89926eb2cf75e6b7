package chunker

import (
	"strings"
	"testing"
)

func TestChunk_FitsReturnsSingle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
	}{
		{"short", "hello world", 2500},
		{"exact bound", strings.Repeat("a", 100), 100},
		{"empty", "", 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.content, tt.maxLen)
			if len(got) != 1 {
				t.Fatalf("expected 1 chunk, got %d", len(got))
			}
			if got[0] != tt.content {
				t.Errorf("expected content unchanged, got %q", got[0])
			}
		})
	}
}

func TestChunk_BalancedSizing(t *testing.T) {
	// 6001 bytes at bound 2500: 3 chunks of ceil(6001/3)=2001 bytes,
	// the final one taking the 1999-byte remainder. The split balances
	// chunk sizes instead of filling the first chunks to the bound.
	content := strings.Repeat("x", 6001)
	got := Chunk(content, 2500)

	if len(got) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(got))
	}
	wantLens := []int{2001, 2001, 1999}
	for i, want := range wantLens {
		if len(got[i]) != want {
			t.Errorf("chunk %d: expected length %d, got %d", i, want, len(got[i]))
		}
	}
}

func TestChunk_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		content string
		maxLen  int
	}{
		{"ascii", strings.Repeat("The quick brown fox. ", 500), 2500},
		{"one over bound", strings.Repeat("a", 2501), 2500},
		{"tiny bound", "abcdefghij", 3},
		{"multibyte", strings.Repeat("héllo wörld ", 300), 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.content, tt.maxLen)
			if joined := strings.Join(got, ""); joined != tt.content {
				t.Errorf("concatenated chunks do not reproduce input (len %d vs %d)",
					len(joined), len(tt.content))
			}
		})
	}
}

func TestChunk_CountMatchesCeilFormula(t *testing.T) {
	for _, n := range []int{2501, 5000, 5001, 7500, 10000, 12345} {
		content := strings.Repeat("z", n)
		got := Chunk(content, 2500)
		want := (n + 2499) / 2500
		if len(got) != want {
			t.Errorf("len=%d: expected %d chunks, got %d", n, want, len(got))
		}
		for i, c := range got {
			if len(c) > 2500 {
				t.Errorf("len=%d chunk %d exceeds bound: %d", n, i, len(c))
			}
		}
	}
}

func TestChunk_ZeroMaxLenUsesDefault(t *testing.T) {
	content := strings.Repeat("a", DefaultMaxSectionLength)
	got := Chunk(content, 0)
	if len(got) != 1 {
		t.Errorf("expected default bound to apply, got %d chunks", len(got))
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(""); got != 0 {
		t.Errorf("empty: expected 0, got %d", got)
	}
	if got := EstimateTokens("word"); got < 1 {
		t.Errorf("single word: expected at least 1, got %d", got)
	}
	long := strings.Repeat("word ", 100)
	if got := EstimateTokens(long); got < 100 {
		t.Errorf("100 words: expected >= 100 tokens, got %d", got)
	}
}
