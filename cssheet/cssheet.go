package cssheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/behaviour"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnknownBehaviour is returned for handler names missing from a Library.
var ErrUnknownBehaviour = errors.New("unknown behaviour")

// MIMEType is the type attribute value marking <style> elements as
// behaviour sheets.
const MIMEType = "text/behaviour"

// Library maps handler names to handlers.
type Library map[string]behaviour.Handler

// Parse reads a behaviour sheet in CSS syntax and resolves handler names
// with lib. If more than one rule binds the same selector, the last one wins.
func Parse(source string, lib Library) (behaviour.Sheet, error) {
	stylesheet, err := parser.Parse(source)
	if err != nil {
		tracer().Errorf("cannot parse behaviour sheet: %v", err)
		return nil, err
	}
	sheet := behaviour.Sheet{}
	for _, r := range stylesheet.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		rule := Rule(*r)
		names, ok := rule.Behaviours()
		if !ok {
			continue
		}
		selector := rule.Selector() // douceur rejects rules with empty preludes
		handler, err := lib.resolve(names)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", selector, err)
		}
		tracer().Debugf("binding %q to %v", selector, names)
		sheet[selector] = handler
	}
	return sheet, nil
}

// Read is like Parse, but reads the sheet from r.
func Read(r io.Reader, lib Library) (behaviour.Sheet, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(source), lib)
}

func (lib Library) resolve(names []string) (behaviour.Handler, error) {
	handlers := make([]behaviour.Handler, 0, len(names))
	for _, name := range names {
		h, ok := lib[name]
		if !ok || h == nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownBehaviour, name)
		}
		handlers = append(handlers, h)
	}
	if len(handlers) == 1 {
		return handlers[0], nil
	}
	return behaviour.Chain(handlers...), nil
}

// Rule is an adapter for douceur CSS rules.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return strings.TrimSpace(r.Prelude)
}

// Value returns the property value for a given key with this rule, or "".
// Keys are case-insensitive.
func (r Rule) Value(key string) (string, bool) {
	for _, d := range r.Declarations {
		if strings.EqualFold(d.Property, key) {
			return d.Value, true
		}
	}
	return "", false
}

// Behaviours returns the handler names of the rule's behaviour declaration.
// The British and the American spelling are accepted alike.
func (r Rule) Behaviours() ([]string, bool) {
	v, ok := r.Value("behaviour")
	if !ok {
		if v, ok = r.Value("behavior"); !ok {
			return nil, false
		}
	}
	names := strings.Fields(v)
	return names, len(names) > 0
}

// ExtractSheets visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style type="text/behaviour"> elements.
// It returns the content of these elements as behaviour sheets, in
// document order.
func ExtractSheets(htmldoc *html.Node, lib Library) ([]behaviour.Sheet, error) {
	var sheets []behaviour.Sheet
	for _, a := range []atom.Atom{atom.Head, atom.Body} {
		s, err := extractSheets(findElement(a, htmldoc), lib)
		if err != nil {
			return sheets, err
		}
		sheets = append(sheets, s...)
	}
	return sheets, nil
}

func extractSheets(h *html.Node, lib Library) ([]behaviour.Sheet, error) {
	if h == nil {
		return nil, nil
	}
	var sheets []behaviour.Sheet
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom != atom.Style || !isBehaviourSheet(ch) || ch.FirstChild == nil {
			continue
		}
		sheet, err := Parse(ch.FirstChild.Data, lib)
		if err != nil {
			return sheets, err
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func isBehaviourSheet(h *html.Node) bool {
	for _, a := range h.Attr {
		if a.Key == "type" {
			return strings.EqualFold(strings.TrimSpace(a.Val), MIMEType)
		}
	}
	return false
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
