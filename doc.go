/*
Package behaviour attaches behaviour to elements of an HTML document, in a
structured way, based on 'behaviour sheets'.

Overview

A behaviour sheet maps CSS selectors to handler functions. Clients register
any number of sheets with a Registry and then initialize the registry
with a document. Every handler is called once for every element matching
its selector:

	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
	    "input.focusOnLoad": func(el w3cdom.Node, params behaviour.Params) error {
	        return focus(el)
	    },
	    "a.hide": func(el w3cdom.Node, params behaviour.Params) error {
	        target, ok := params.Get("target")
	        if !ok {
	            return nil
	        }
	        return toggleOnClick(el, target)
	    },
	})
	err := reg.Init(doc)

Parameters may be supplied in <key>:<value> form in the class attribute of
an element (class="hide target:#panel") and will be passed to the handler
as a map (see ParseParameters).

Init may be called repeatedly, e.g. after inserting new content into the
document. A registry remembers which selectors it applied to which element
and will not apply a selector to an element twice.

Errors

Init stops at the first handler returning an error and reports it as a
*HandlerError. Clients wanting every handler to get its chance may create the
registry with option WithIsolation.

Status

Early draft, API may change frequently. Please stay patient.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package behaviour

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'behaviour'.
func tracer() tracing.Trace {
	return tracing.Select("behaviour")
}
