package behaviour_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/behaviour"
	"github.com/npillmayer/behaviour/dom"
	"github.com/npillmayer/behaviour/dom/w3cdom"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const page = `<html><body>
<form>
  <input id="first" class="focusOnLoad">
  <input id="second" class="focusOnLoad">
</form>
<a id="toggle" class="hide target:#panel" href="#">Toggle</a>
<div id="panel" class="panel">Panel</div>
</body></html>`

func parse(t *testing.T, src string) *dom.Document {
	doc, err := dom.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func id(el w3cdom.Node) string {
	if a := el.Attributes().GetNamedItem("id"); a != nil {
		return a.Value()
	}
	return el.NodeName()
}

func TestInitTwiceAppliesOncePerElement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "behaviour")
	defer teardown()
	//
	doc := parse(t, page)
	var focused []string
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"input.focusOnLoad": func(el w3cdom.Node, params behaviour.Params) error {
			focused = append(focused, id(el))
			return nil
		},
	})
	require.NoError(t, reg.Init(doc))
	require.NoError(t, reg.Init(doc))
	if len(focused) != 2 {
		t.Errorf("expected handler to be called twice, was called %d times", len(focused))
	}
	assert.Equal(t, []string{"first", "second"}, focused, "expected document order")
}

func TestInitPassesParameters(t *testing.T) {
	doc := parse(t, page)
	var got behaviour.Params
	var subject w3cdom.Node
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"a.hide": func(el w3cdom.Node, params behaviour.Params) error {
			subject, got = el, params
			return nil
		},
	})
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, behaviour.Params{"target": "#panel"}, got)
	require.NotNil(t, subject)
	assert.Equal(t, "toggle", id(subject))
	assert.Equal(t, []string{"a.hide"}, reg.Applied(subject))
}

func TestInitEmptyClassStillRunsHandler(t *testing.T) {
	doc := parse(t, `<p>no class</p>`)
	calls := 0
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"p": func(el w3cdom.Node, params behaviour.Params) error {
			calls++
			if params == nil || len(params) != 0 {
				t.Errorf("expected empty parameter map, have %v", params)
			}
			return nil
		},
	})
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, 1, calls)
}

func TestInitNoMatches(t *testing.T) {
	doc := parse(t, page)
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"table tbody tr": func(el w3cdom.Node, params behaviour.Params) error {
			t.Errorf("handler must not be called, was called for %s", id(el))
			return nil
		},
	})
	assert.NoError(t, reg.Init(doc))
}

func TestInitSheetOrder(t *testing.T) {
	doc := parse(t, page)
	var trace []string
	record := func(tag string) behaviour.Handler {
		return func(el w3cdom.Node, params behaviour.Params) error {
			trace = append(trace, tag+"@"+id(el))
			return nil
		}
	}
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"div.panel": record("S1"),
	})
	reg.Register(behaviour.Sheet{
		"a.hide":            record("S2"),
		"input.focusOnLoad": record("S2"),
	})
	assert.Equal(t, 2, reg.Len())
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, []string{
		"S1@panel",
		"S2@toggle",
		"S2@first",
		"S2@second",
	}, trace)
}

func TestInitDuplicateSheetIsHarmless(t *testing.T) {
	doc := parse(t, page)
	calls := 0
	sheet := behaviour.Sheet{
		"input": func(el w3cdom.Node, params behaviour.Params) error {
			calls++
			return nil
		},
	}
	reg := behaviour.New()
	reg.Register(sheet)
	reg.Register(sheet)
	assert.Equal(t, 2, reg.Len())
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, 2, calls, "expected each input to be handled once")
}

func TestInitAppliesToNewContent(t *testing.T) {
	doc := parse(t, page)
	var focused []string
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		".focusOnLoad": func(el w3cdom.Node, params behaviour.Params) error {
			focused = append(focused, id(el))
			return nil
		},
	})
	require.NoError(t, reg.Init(doc))
	form, err := doc.QuerySelector("form")
	require.NoError(t, err)
	form.HTMLNode().AppendChild(&html.Node{
		Type: html.ElementNode,
		Data: "input",
		Attr: []html.Attribute{
			{Key: "id", Val: "third"},
			{Key: "class", Val: "focusOnLoad"},
		},
	})
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, []string{"first", "second", "third"}, focused)
}

func TestInitOverlappingSelectors(t *testing.T) {
	doc := parse(t, page)
	reg := behaviour.New()
	nop := func(el w3cdom.Node, params behaviour.Params) error { return nil }
	reg.Register(behaviour.Sheet{"input": nop, "#first": nop})
	require.NoError(t, reg.Init(doc))
	first, err := doc.QuerySelector("#first")
	require.NoError(t, err)
	assert.Equal(t, []string{"#first", "input"}, reg.Applied(first))
	panel, _ := doc.QuerySelector("#panel")
	assert.Nil(t, reg.Applied(panel))
}

func TestInitFailsFast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "behaviour")
	defer teardown()
	//
	doc := parse(t, page)
	boom := errors.New("boom")
	calls := 0
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"input": func(el w3cdom.Node, params behaviour.Params) error {
			calls++
			return boom
		},
	})
	reg.Register(behaviour.Sheet{
		"a": func(el w3cdom.Node, params behaviour.Params) error {
			t.Error("expected later sheets not to be processed after a failure")
			return nil
		},
	})
	err := reg.Init(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var herr *behaviour.HandlerError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "input", herr.Selector)
	assert.Equal(t, "first", id(herr.Element))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{}, reg.Applied(herr.Element), "expected failed pair not to be recorded")
}

func TestInitRetriesFailedHandler(t *testing.T) {
	doc := parse(t, `<p>retry</p>`)
	calls := 0
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"p": func(el w3cdom.Node, params behaviour.Params) error {
			calls++
			if calls == 1 {
				return errors.New("not yet")
			}
			return nil
		},
	})
	assert.Error(t, reg.Init(doc))
	assert.NoError(t, reg.Init(doc))
	assert.NoError(t, reg.Init(doc))
	assert.Equal(t, 2, calls)
}

func TestInitPanicPropagates(t *testing.T) {
	doc := parse(t, `<p>panic</p>`)
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"p": func(el w3cdom.Node, params behaviour.Params) error {
			panic("handler bug")
		},
	})
	assert.PanicsWithValue(t, "handler bug", func() { _ = reg.Init(doc) })
}

func TestInitWithIsolation(t *testing.T) {
	doc := parse(t, page)
	var done []string
	reg := behaviour.New(behaviour.WithIsolation())
	reg.Register(behaviour.Sheet{
		"#first": func(el w3cdom.Node, params behaviour.Params) error {
			return fmt.Errorf("cannot focus %s", id(el))
		},
		"#second": func(el w3cdom.Node, params behaviour.Params) error {
			panic("oops")
		},
		"a.hide": func(el w3cdom.Node, params behaviour.Params) error {
			done = append(done, id(el))
			return nil
		},
	})
	reg.Register(behaviour.Sheet{
		"div": func(el w3cdom.Node, params behaviour.Params) error {
			done = append(done, id(el))
			return nil
		},
	})
	err := reg.Init(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, behaviour.ErrHandlerPanic)
	assert.Contains(t, err.Error(), "cannot focus first")
	assert.Equal(t, []string{"toggle", "panel"}, done)
}

func TestInitInvalidSelector(t *testing.T) {
	doc := parse(t, page)
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"a[href": func(el w3cdom.Node, params behaviour.Params) error { return nil },
	})
	err := reg.Init(doc)
	assert.ErrorIs(t, err, dom.ErrInvalidSelector)
}

func TestInitNilHandlerAndNilDocument(t *testing.T) {
	reg := behaviour.New()
	assert.ErrorIs(t, reg.Init(nil), behaviour.ErrNoDocument)
	reg.Register(behaviour.Sheet{"p": nil})
	err := reg.Init(parse(t, `<p>x</p>`))
	assert.ErrorIs(t, err, behaviour.ErrNilHandler)
}

func TestChain(t *testing.T) {
	doc := parse(t, `<p class="n:1">x</p>`)
	var trace []string
	step := func(tag string, fail bool) behaviour.Handler {
		return func(el w3cdom.Node, params behaviour.Params) error {
			trace = append(trace, tag+params["n"])
			if fail {
				return errors.New(tag)
			}
			return nil
		}
	}
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"p": behaviour.Chain(step("a", false), step("b", true), step("c", false)),
	})
	assert.Error(t, reg.Init(doc))
	assert.Equal(t, []string{"a1", "b1"}, trace)
}

func TestInitWithIsolationTriesFailedPairOncePerInit(t *testing.T) {
	doc := parse(t, `<p>x</p>`)
	calls := 0
	sheet := behaviour.Sheet{
		"p": func(el w3cdom.Node, params behaviour.Params) error {
			calls++
			return errors.New("always failing")
		},
	}
	reg := behaviour.New(behaviour.WithIsolation())
	reg.Register(sheet)
	reg.Register(sheet)
	assert.Error(t, reg.Init(doc))
	if calls != 1 {
		t.Errorf("expected failing handler to be called once per Init, was called %d times", calls)
	}
	assert.Error(t, reg.Init(doc))
	assert.Equal(t, 2, calls, "expected the next Init to try again")
}

func TestInitProcessesSheetsRegisteredDuringInit(t *testing.T) {
	doc := parse(t, page)
	var trace []string
	reg := behaviour.New()
	reg.Register(behaviour.Sheet{
		"div.panel": func(el w3cdom.Node, params behaviour.Params) error {
			trace = append(trace, "panel")
			reg.Register(behaviour.Sheet{
				"a.hide": func(el w3cdom.Node, params behaviour.Params) error {
					trace = append(trace, "late@"+id(el))
					return nil
				},
			})
			return nil
		},
	})
	require.NoError(t, reg.Init(doc))
	assert.Equal(t, []string{"panel", "late@toggle"}, trace)
	assert.Equal(t, 2, reg.Len())
}
