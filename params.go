package behaviour

import (
	"unicode/utf8"

	"github.com/npillmayer/behaviour/dom/w3cdom"
)

// Params are parameters extracted from the class attribute of an element.
type Params map[string]string

// Get returns the value for a parameter key and whether it is present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// GetParameters extracts the parameters from the class attribute of an
// element (see ParseParameters). A nil element has no parameters.
func GetParameters(el w3cdom.Node) Params {
	if el == nil {
		return Params{}
	}
	return ParseParameters(el.ClassName())
}

// ParseParameters extracts <key>:<value> tokens from the value of a class
// attribute.
//
// A key consists of one or more characters out of [a-zA-Z0-9_-], followed
// by a colon. The value is everything up to the next white space or line
// terminator and may be empty. White space is what ECMAScript counts as
// such (see isWhiteSpace): U+0085 is not white space, U+FEFF is.
// Tokens are collected from left to right and do not overlap.
// Class names without a colon do not contribute anything. If a key occurs
// more than once, the last value wins.
//
//	"hide target:#panel"   =>  {target: "#panel"}
//	"foo:1 foo:2"          =>  {foo: "2"}
//	"link href:http://x"   =>  {href: "http://x"}
//
// The result is never nil.
func ParseParameters(class string) Params {
	params := Params{}
	i := 0
	for i < len(class) {
		if !isKeyChar(class[i]) {
			i++
			continue
		}
		start := i
		for i < len(class) && isKeyChar(class[i]) {
			i++
		}
		// a key must be followed by a colon; no shorter key starting
		// within this run can be followed by a colon either
		if i == len(class) || class[i] != ':' {
			continue
		}
		key := class[start:i]
		i++ // skip ':'
		vstart := i
		for i < len(class) {
			r, size := utf8.DecodeRuneInString(class[i:])
			if isWhiteSpace(r) {
				break
			}
			i += size
		}
		params[key] = class[vstart:i]
	}
	return params
}

func isKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '-'
}

// isWhiteSpace reports ECMAScript WhiteSpace and LineTerminator code points,
// i.e., the class matched by \s in JavaScript regular expressions.
func isWhiteSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\u1680',
		'\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}
