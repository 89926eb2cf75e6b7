package extractor

import (
	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/section"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown splits a markdown document into sections at heading
// boundaries using goldmark's AST.
type Markdown struct {
	MaxSectionLength int
}

// Extract partitions the top-level block sequence into contiguous
// groups, opening a new group at every heading. Each group's content
// is the original source span from its first block to the start of
// the next group, so serialization stays byte-faithful without a
// markdown renderer. A document with no headings yields exactly one
// unheaded group.
func (e *Markdown) Extract(data []byte) ([]section.Section, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	type group struct {
		heading string
		start   int
	}
	var groups []group

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			start, found := blockStart(h, data)
			if !found {
				continue
			}
			groups = append(groups, group{
				heading: string(h.Text(data)),
				start:   lineStart(data, start),
			})
			continue
		}
		if len(groups) == 0 {
			start := 0
			if s, found := blockStart(n, data); found {
				start = lineStart(data, s)
			}
			groups = append(groups, group{start: start})
		}
	}

	if len(groups) == 0 {
		return nil, nil
	}

	var sections []section.Section
	for i, g := range groups {
		stop := len(data)
		if i+1 < len(groups) {
			stop = groups[i+1].start
		}
		content := string(data[g.start:stop])

		parts := chunker.Chunk(content, e.MaxSectionLength)
		if len(parts) > 1 {
			for k, p := range parts {
				sections = append(sections, section.Section{
					Content: p,
					Heading: g.heading,
					Part:    k + 1,
					Total:   len(parts),
				})
			}
			continue
		}
		sections = append(sections, section.Section{Content: content, Heading: g.heading})
	}
	return sections, nil
}

// blockStart returns the smallest source offset covered by the block
// node or any of its descendants. Nodes with no source lines (e.g. a
// thematic break) report found=false; their bytes still end up in the
// surrounding group because groups slice contiguous source spans.
func blockStart(n ast.Node, src []byte) (int, bool) {
	min := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		if lines := c.Lines(); lines != nil && lines.Len() > 0 {
			if s := lines.At(0).Start; min == -1 || s < min {
				min = s
			}
		}
		return ast.WalkContinue, nil
	})
	if min == -1 {
		return 0, false
	}
	return min, true
}

// lineStart rewinds an offset to the beginning of its line, so a
// heading span includes its marker characters.
func lineStart(src []byte, off int) int {
	for off > 0 && src[off-1] != '\n' {
		off--
	}
	return off
}
