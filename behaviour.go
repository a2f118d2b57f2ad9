package behaviour

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/behaviour/dom/w3cdom"
)

// Handler is the type for behaviour functions. It is called with a matched
// element and the parameters extracted from the element's class attribute.
type Handler func(el w3cdom.Node, params Params) error

// Sheet maps selectors to handlers.
type Sheet map[string]Handler

// Registry holds an ordered list of behaviour sheets and remembers which
// selectors have been applied to which element.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	sheets  []Sheet
	applied *appliedSet
	isolate bool
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{applied: newAppliedSet()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a sheet to the registry. Sheets are not checked or
// de-duplicated; registering a sheet twice will keep two entries.
// The registry keeps a reference to sheet, not a copy.
func (r *Registry) Register(sheet Sheet) {
	r.sheets = append(r.sheets, sheet)
	tracer().Debugf("registered sheet #%d with %d selector(s)", len(r.sheets), len(sheet))
}

// Len returns the number of registered sheets.
func (r *Registry) Len() int {
	return len(r.sheets)
}

// Applied returns the selectors which have been applied to an element,
// in the order of application. It returns nil for elements the registry
// has never handled.
func (r *Registry) Applied(el w3cdom.Node) []string {
	return r.applied.tags(el)
}

// Init applies every registered sheet to a document.
//
// Sheets are processed in the order of registration. Within a sheet,
// selectors are processed in lexical order, and elements matching a selector
// are processed in document order. A handler is called for every matching
// element it has not yet been applied to by this registry.
//
// A selector which doesn't match any element is not an error. A selector
// the document cannot evaluate stops processing and its error is returned.
// A failing handler stops processing as well, unless the registry has been
// created with option WithIsolation. In that case all handler errors are
// collected and returned together after every sheet has been processed.
// A handler which failed for an element is not called again for this
// element and selector during the same Init.
//
// Sheets registered by a handler while Init is running are processed by
// the same call to Init.
func (r *Registry) Init(doc w3cdom.Document) error {
	if doc == nil {
		return ErrNoDocument
	}
	var errs []error
	failed := make(map[application]bool)
	for i := 0; i < len(r.sheets); i++ {
		sheet := r.sheets[i]
		for _, selector := range selectorsOf(sheet) {
			elements, err := doc.QuerySelectorAll(selector)
			if err != nil {
				tracer().Errorf("sheet #%d: %v", i+1, err)
				return fmt.Errorf("sheet #%d: %w", i+1, err)
			}
			if elements == nil {
				continue
			}
			handler := sheet[selector]
			for j := 0; j < elements.Length(); j++ {
				el := elements.Item(j)
				if el == nil || r.applied.contains(el, selector) {
					continue
				}
				pair := application{el: el, selector: selector}
				if failed[pair] {
					continue
				}
				r.applied.enter(el)
				if err := r.apply(handler, selector, el); err != nil {
					tracer().Errorf("%v", err)
					if !r.isolate {
						return err
					}
					failed[pair] = true
					errs = append(errs, err)
					continue
				}
				r.applied.add(el, selector)
			}
		}
	}
	tracer().Debugf("behaviour applied to %d element(s), %d failure(s)", r.applied.size(), len(errs))
	return errors.Join(errs...)
}

// apply calls a handler for an element. In isolation mode, panics of the
// handler are turned into errors.
func (r *Registry) apply(handler Handler, selector string, el w3cdom.Node) (err error) {
	if handler == nil {
		return &HandlerError{Selector: selector, Element: el, Err: ErrNilHandler}
	}
	if r.isolate {
		defer func() {
			if p := recover(); p != nil {
				err = &HandlerError{
					Selector: selector,
					Element:  el,
					Err:      fmt.Errorf("%w: %v", ErrHandlerPanic, p),
				}
			}
		}()
	}
	params := GetParameters(el)
	tracer().Debugf("applying %q to %s with %d parameter(s)", selector, el.NodeName(), len(params))
	if err := handler(el, params); err != nil {
		return &HandlerError{Selector: selector, Element: el, Err: err}
	}
	return nil
}

// selectorsOf returns the selectors of a sheet in lexical order.
func selectorsOf(sheet Sheet) []string {
	selectors := make([]string, 0, len(sheet))
	for sel := range sheet {
		selectors = append(selectors, sel)
	}
	sort.Strings(selectors)
	return selectors
}

// Chain combines handlers into a single handler, calling them in order.
// The first error stops the chain.
func Chain(handlers ...Handler) Handler {
	return func(el w3cdom.Node, params Params) error {
		for _, h := range handlers {
			if h == nil {
				return ErrNilHandler
			}
			if err := h(el, params); err != nil {
				return err
			}
		}
		return nil
	}
}
