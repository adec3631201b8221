// Package crowdin turns a Crowdin task board into a translation request report:
// it extracts task links from the board's DOM, groups them by task name and
// renders one block per task.
package crowdin

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
)

// Node is a read-only view of a DOM element.
type Node interface {
	Attr(name string) (string, bool)
	Find(selector string) []Node
	Text() string
}

// Document is a read-only view of a rendered page.
type Document interface {
	Find(selector string) []Node
}

// HTMLDocument is a Document backed by goquery.
type HTMLDocument struct {
	doc *goquery.Document
}

// NewHTMLDocument parses an HTML page snapshot.
func NewHTMLDocument(r io.Reader) (*HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}
	return &HTMLDocument{doc: doc}, nil
}

func (d *HTMLDocument) Find(selector string) []Node {
	return nodes(d.doc.Find(selector))
}

type selectionNode struct {
	sel *goquery.Selection
}

func (n selectionNode) Attr(name string) (string, bool) { return n.sel.Attr(name) }
func (n selectionNode) Find(selector string) []Node     { return nodes(n.sel.Find(selector)) }
func (n selectionNode) Text() string                    { return n.sel.Text() }

func nodes(sel *goquery.Selection) []Node {
	out := make([]Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, selectionNode{sel: s})
	})
	return out
}
