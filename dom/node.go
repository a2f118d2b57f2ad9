package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"strings"

	"github.com/npillmayer/behaviour/dom/w3cdom"
	"golang.org/x/net/html"
)

// W3CNode is the type for adapting HTML parse tree nodes to W3C DOM nodes.
// W3CNodes are created by a Document; do not create them directly.
type W3CNode struct {
	h   *html.Node
	doc *Document
}

var _ w3cdom.Node = &W3CNode{}

var errNullNode = errors.New("cannot operate on null-node")

// HTMLNode returns the underlying HTML parse tree node.
func (w *W3CNode) HTMLNode() *html.Node {
	if w == nil {
		return nil
	}
	return w.h
}

// IsElement is a predicate checking if a node is an HTML element.
func (w *W3CNode) IsElement() bool {
	return w != nil && w.h.Type == html.ElementNode
}

// wrap returns an untyped nil for absent nodes, as required for
// interface return values.
func (w *W3CNode) wrap(h *html.Node) w3cdom.Node {
	if h == nil {
		return nil
	}
	return w.doc.Node(h)
}

// NodeType returns the type of the underlying HTML node.
func (w *W3CNode) NodeType() html.NodeType {
	if w == nil {
		return html.ErrorNode
	}
	return w.h.Type
}

// NodeName returns the tag name for elements, "#text" for text nodes,
// "#document" for the document node and "#comment" for comments.
func (w *W3CNode) NodeName() string {
	if w == nil {
		return ""
	}
	switch w.h.Type {
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return "#doctype"
	}
	return w.h.Data
}

// NodeValue returns the text of text and comment nodes, "" otherwise.
func (w *W3CNode) NodeValue() string {
	if w == nil {
		return ""
	}
	if w.h.Type == html.TextNode || w.h.Type == html.CommentNode {
		return w.h.Data
	}
	return ""
}

// HasAttributes checks for existence of attributes.
func (w *W3CNode) HasAttributes() bool {
	return w != nil && len(w.h.Attr) > 0
}

// ParentNode returns the parent node, or nil for the root.
func (w *W3CNode) ParentNode() w3cdom.Node {
	if w == nil {
		return nil
	}
	return w.wrap(w.h.Parent)
}

// HasChildNodes checks for existence of children nodes of any type.
func (w *W3CNode) HasChildNodes() bool {
	return w != nil && w.h.FirstChild != nil
}

// ChildNodes returns all children nodes, including text nodes.
func (w *W3CNode) ChildNodes() w3cdom.NodeList {
	var children nodeList
	if w != nil {
		for ch := w.h.FirstChild; ch != nil; ch = ch.NextSibling {
			children = append(children, w.doc.Node(ch))
		}
	}
	return children
}

// Children returns the element children of a node.
func (w *W3CNode) Children() w3cdom.NodeList {
	var children nodeList
	if w != nil {
		for ch := w.h.FirstChild; ch != nil; ch = ch.NextSibling {
			if ch.Type == html.ElementNode {
				children = append(children, w.doc.Node(ch))
			}
		}
	}
	return children
}

// FirstChild returns the first child node, or nil.
func (w *W3CNode) FirstChild() w3cdom.Node {
	if w == nil {
		return nil
	}
	return w.wrap(w.h.FirstChild)
}

// NextSibling returns the node's next sibling, or nil if it is the last one.
func (w *W3CNode) NextSibling() w3cdom.Node {
	if w == nil {
		return nil
	}
	return w.wrap(w.h.NextSibling)
}

// Attributes returns all the attributes of a node.
func (w *W3CNode) Attributes() w3cdom.NamedNodeMap {
	if w == nil {
		return attrMap(nil)
	}
	return attrMap(w.h.Attr)
}

// ClassName returns the value of the class attribute, or "" if there is none.
func (w *W3CNode) ClassName() string {
	if w == nil || w.h.Type != html.ElementNode {
		return ""
	}
	for _, a := range w.h.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return a.Val
		}
	}
	return ""
}

// TextContent returns the text of a node and all its descendents,
// concatenated in document order.
func (w *W3CNode) TextContent() (string, error) {
	if w == nil {
		return "", errNullNode
	}
	var b strings.Builder
	collectText(w.h, &b)
	return b.String(), nil
}

func collectText(h *html.Node, b *strings.Builder) {
	if h.Type == html.TextNode {
		b.WriteString(h.Data)
		return
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		collectText(ch, b)
	}
}

func (w *W3CNode) String() string {
	if w == nil {
		return "<nil>"
	}
	if w.h.Type != html.ElementNode {
		return w.NodeName()
	}
	var b strings.Builder
	b.WriteString("<" + w.h.Data)
	for _, a := range w.h.Attr {
		if a.Key == "id" || a.Key == "class" {
			b.WriteString(" " + a.Key + "=\"" + a.Val + "\"")
		}
	}
	b.WriteString(">")
	return b.String()
}
