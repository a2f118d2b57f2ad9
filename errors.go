package behaviour

import (
	"errors"
	"fmt"

	"github.com/npillmayer/behaviour/dom/w3cdom"
)

// ErrNoDocument is returned by Init if called without a document.
var ErrNoDocument = errors.New("no document to apply behaviour to")

// ErrNilHandler is reported for selectors bound to a nil handler.
var ErrNilHandler = errors.New("handler is nil")

// ErrHandlerPanic is wrapped into errors for recovered handler panics
// (see WithIsolation).
var ErrHandlerPanic = errors.New("handler panicked")

// HandlerError reports a handler failing for an element.
type HandlerError struct {
	Selector string      // selector the handler is registered for
	Element  w3cdom.Node // element the handler has been called for
	Err      error       // error returned by the handler
}

func (e *HandlerError) Error() string {
	name := "<nil>"
	if e.Element != nil {
		name = e.Element.NodeName()
	}
	return fmt.Sprintf("behaviour %q failed for <%s>: %v", e.Selector, name, e.Err)
}

// Unwrap returns the error of the handler.
func (e *HandlerError) Unwrap() error {
	return e.Err
}
