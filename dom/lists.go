package dom

import (
	"strings"

	"github.com/npillmayer/behaviour/dom/w3cdom"
	"golang.org/x/net/html"
)

// --- Node lists -------------------------------------------------------

type nodeList []*W3CNode

var _ w3cdom.NodeList = nodeList{}

func (nl nodeList) Length() int {
	return len(nl)
}

// Item returns the i-th node of the list, or nil if i is out of range.
func (nl nodeList) Item(i int) w3cdom.Node {
	if i < 0 || i >= len(nl) {
		return nil
	}
	return nl[i]
}

func (nl nodeList) String() string {
	var b strings.Builder
	b.WriteString("[")
	for i, n := range nl {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(n.String())
	}
	b.WriteString("]")
	return b.String()
}

// --- Attributes -------------------------------------------------------

type attr struct {
	a html.Attribute
}

var _ w3cdom.Attr = attr{}

func (a attr) Namespace() string { return a.a.Namespace }
func (a attr) Key() string       { return a.a.Key }
func (a attr) Value() string     { return a.a.Val }

type attrMap []html.Attribute

var _ w3cdom.NamedNodeMap = attrMap{}

func (m attrMap) Length() int {
	return len(m)
}

// Item returns the i-th attribute, or nil if i is out of range.
func (m attrMap) Item(i int) w3cdom.Attr {
	if i < 0 || i >= len(m) {
		return nil
	}
	return attr{m[i]}
}

// GetNamedItem returns the attribute with a given key, or nil.
func (m attrMap) GetNamedItem(key string) w3cdom.Attr {
	for _, a := range m {
		if a.Key == key {
			return attr{a}
		}
	}
	return nil
}
