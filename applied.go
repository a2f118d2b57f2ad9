package behaviour

import (
	"slices"

	"github.com/npillmayer/behaviour/dom/w3cdom"
)

// application is an (element, selector) pair.
type application struct {
	el       w3cdom.Node
	selector string
}

// appliedSet is a side table remembering which selectors have been applied
// to which element. Elements are keyed by identity, which requires
// w3cdom.Node implementations to be comparable.
type appliedSet struct {
	tagsOf map[w3cdom.Node][]string
}

func newAppliedSet() *appliedSet {
	return &appliedSet{tagsOf: make(map[w3cdom.Node][]string)}
}

// contains checks if a selector has been applied to el.
func (s *appliedSet) contains(el w3cdom.Node, selector string) bool {
	return slices.Contains(s.tagsOf[el], selector)
}

// enter makes el known, without any selectors applied.
func (s *appliedSet) enter(el w3cdom.Node) {
	if _, ok := s.tagsOf[el]; !ok {
		s.tagsOf[el] = []string{}
	}
}

// add records the application of selector to el.
func (s *appliedSet) add(el w3cdom.Node, selector string) {
	if s.contains(el, selector) {
		return
	}
	s.tagsOf[el] = append(s.tagsOf[el], selector)
}

// tags returns a copy of the selectors applied to el, or nil for unknown
// elements.
func (s *appliedSet) tags(el w3cdom.Node) []string {
	tags, ok := s.tagsOf[el]
	if !ok {
		return nil
	}
	return slices.Clone(tags)
}

// size is the number of elements known to the set.
func (s *appliedSet) size() int {
	return len(s.tagsOf)
}
