/*
Package cssheet reads behaviour sheets written in CSS syntax.

Overview

Behaviour sheets are usually Go maps from selectors to handlers. For
documents which want to declare their own behaviour, this package accepts
a stylesheet-like notation instead, binding selectors to handlers by name:

	input.focusOnLoad { behaviour: focus; }
	table tbody tr    { behaviour: hover; }
	a.hide            { behaviour: toggle track; }

Names are resolved against a Library supplied by the client. If a rule names
more than one handler, they are chained in order (see behaviour.Chain).
Rules without a 'behaviour' (or 'behavior') declaration are ignored, so
ordinary CSS may live in the same source.

Sheets may also be embedded in an HTML document, as the content of
<style type="text/behaviour"> elements.

Parsing is done by https://github.com/aymerick/douceur.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssheet

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'behaviour.cssheet'.
func tracer() tracing.Trace {
	return tracing.Select("behaviour.cssheet")
}
