// Package section defines the unit of extractor output.
package section

// Section is one bounded chunk of extracted text plus optional
// structural metadata. Heading is empty when the source unit had no
// inherent structure. Part and Total are set together, and only when
// a logical unit was split to satisfy the length bound; concatenating
// the Content of all parts of a unit in Part order reproduces the
// unit exactly.
type Section struct {
	Content string `json:"content"`
	Heading string `json:"heading,omitempty"`
	Part    int    `json:"part,omitempty"`
	Total   int    `json:"total,omitempty"`

	// PageNumber is set by the PDF extractor for every section of a
	// page, including part-splits. Persistence re-derives the stored
	// page number from the heading text instead (see pipeline).
	PageNumber int `json:"page_number,omitempty"`
}
