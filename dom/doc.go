/*
Package dom provides a W3C-style document object model on top of HTML parse trees.

Status

Early draft, API may change frequently. Please stay patient.

Overview

Package x/net/html gives us a perfectly usable parse tree, but its nodes are
plain structs without any notion of queries. Behaviour sheets need two
capabilities from a document: find all elements matching a selector, and
read an element's class attribute. Type Document adds the former (using
https://godoc.org/github.com/andybalholm/cascadia as the selector engine),
type W3CNode wraps html.Node to implement interface w3cdom.Node.

	doc, err := dom.Parse(strings.NewReader(`<input class="focusOnLoad">`))
	inputs, err := doc.QuerySelectorAll("input.focusOnLoad")

A Document hands out exactly one W3CNode per HTML node. Clients may therefore
compare nodes with == and use them as map keys, even across queries. The
HTML parse tree may be modified between queries (e.g., inserting new
content); new HTML nodes will get new wrappers on first encounter.

Documents cache compiled selectors. Neither the cache nor the node
wrappers are protected against concurrent access: a Document belongs to
a single goroutine.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'behaviour.dom'
func tracer() tracing.Trace {
	return tracing.Select("behaviour.dom")
}
