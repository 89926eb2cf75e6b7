package extractor

import (
	"bytes"
	"strings"

	"github.com/dgallion1/docslice/internal/chunker"
	"github.com/dgallion1/docslice/internal/section"
	"golang.org/x/net/html"
)

// HTML partitions a document's body text at h1..h6 elements, the same
// grouping the markdown extractor applies at heading nodes.
type HTML struct {
	MaxSectionLength int
}

func (e *HTML) Extract(data []byte) ([]section.Section, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &ExtractionError{Format: FormatHTML, Err: err}
	}

	type group struct {
		heading string
		blocks  []string
	}
	var groups []group

	appendBlock := func(text string) {
		if text == "" {
			return
		}
		if len(groups) == 0 {
			groups = append(groups, group{})
		}
		g := &groups[len(groups)-1]
		g.blocks = append(g.blocks, text)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if isHeadingTag(n.Data) {
				groups = append(groups, group{heading: textContent(n)})
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "p", "li", "td", "blockquote", "pre":
				appendBlock(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	var sections []section.Section
	for _, g := range groups {
		content := strings.Join(g.blocks, "\n\n")
		if content == "" && g.heading == "" {
			continue
		}
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

func isHeadingTag(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
