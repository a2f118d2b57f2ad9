package dom

import (
	"errors"
	"fmt"
	"io"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/behaviour/dom/w3cdom"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned for selectors cascadia cannot compile.
var ErrInvalidSelector = errors.New("invalid selector")

// Document is a queryable HTML document. It implements w3cdom.Document.
type Document struct {
	root      *html.Node
	nodes     map[*html.Node]*W3CNode      // canonical wrappers
	selectors map[string]cascadia.Selector // compiled selectors
}

var _ w3cdom.Document = &Document{}

// Parse reads an HTML document and returns it as a Document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return FromHTMLNode(root), nil
}

// FromHTMLNode creates a Document for an existing HTML parse tree.
// root is usually a node of type html.DocumentNode, but any (sub-)tree
// will do. Queries will find root and its descendents.
func FromHTMLNode(root *html.Node) *Document {
	return &Document{
		root:      root,
		nodes:     make(map[*html.Node]*W3CNode),
		selectors: make(map[string]cascadia.Selector),
	}
}

// Root returns the root node of the document.
func (doc *Document) Root() *W3CNode {
	return doc.Node(doc.root)
}

// Node returns the W3CNode for an HTML node of this document. Repeated calls
// for the same HTML node return the identical W3CNode.
// If h is nil, Node returns nil.
func (doc *Document) Node(h *html.Node) *W3CNode {
	if h == nil {
		return nil
	}
	if n, ok := doc.nodes[h]; ok {
		return n
	}
	n := &W3CNode{h: h, doc: doc}
	doc.nodes[h] = n
	return n
}

// QuerySelectorAll returns all nodes matching a CSS selector, in document order.
// A selector may be a group of selectors, separated by commas.
//
// Interface w3cdom.Document
func (doc *Document) QuerySelectorAll(selector string) (w3cdom.NodeList, error) {
	sel, err := doc.compile(selector)
	if err != nil {
		return nil, err
	}
	var matches nodeList
	if doc.root != nil {
		for _, h := range sel.MatchAll(doc.root) {
			matches = append(matches, doc.Node(h))
		}
	}
	tracer().Debugf("query %q matched %d node(s)", selector, len(matches))
	return matches, nil
}

// QuerySelector returns the first node matching a CSS selector, or nil.
func (doc *Document) QuerySelector(selector string) (*W3CNode, error) {
	sel, err := doc.compile(selector)
	if err != nil {
		return nil, err
	}
	if doc.root == nil {
		return nil, nil
	}
	return doc.Node(sel.MatchFirst(doc.root)), nil
}

func (doc *Document) compile(selector string) (cascadia.Selector, error) {
	if sel, ok := doc.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		tracer().Errorf("cannot compile selector %q: %v", selector, err)
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	doc.selectors[selector] = sel
	return sel, nil
}
