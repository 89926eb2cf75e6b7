// Package chunker splits text into near-equal length-bounded pieces.
package chunker

// DefaultMaxSectionLength is the section length bound used when no
// override is configured.
const DefaultMaxSectionLength = 2500

// Chunk splits content into contiguous, non-overlapping slices no
// longer than maxLen. Content that fits the bound comes back as a
// single element, even when empty.
//
// The chunk width is derived from the chunk count rather than from
// maxLen directly: ceil(len/maxLen) chunks of ceil(len/chunks) bytes.
// That balances chunk sizes instead of maximizing them — the last
// chunk can be shorter than the rest, but no chunk is much larger
// than any other. Downstream consumers depend on this exact split.
func Chunk(content string, maxLen int) []string {
	if maxLen <= 0 {
		maxLen = DefaultMaxSectionLength
	}
	if len(content) <= maxLen {
		return []string{content}
	}

	numberChunks := (len(content) + maxLen - 1) / maxLen
	chunkSize := (len(content) + numberChunks - 1) / numberChunks

	chunks := make([]string, 0, numberChunks)
	for i := 0; i < numberChunks; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > len(content) {
			end = len(content)
		}
		chunks = append(chunks, content[start:end])
	}
	return chunks
}
