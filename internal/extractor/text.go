package extractor

import (
	"github.com/dgallion1/docslice/internal/section"
)

// Plaintext treats the whole decoded text as one logical unit and
// chunks it with no heading. It serves CSV files, plain text, and the
// fallback for unrecognized extensions; CSV gets no row-level
// treatment because the downstream retrieval layer consumes it as
// opaque text.
type Plaintext struct {
	MaxSectionLength int
}

func (e *Plaintext) Extract(data []byte) ([]section.Section, error) {
	return flatSections(string(data), e.MaxSectionLength), nil
}
