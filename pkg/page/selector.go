package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// ErrInvalidSelector is returned when a selector cannot be compiled.
var ErrInvalidSelector = errors.New("page: invalid selector")

// Selector is a compiled CSS selector group.
type Selector struct {
	source  string
	matcher cascadia.Selector
}

// Compile parses selector.
func Compile(selector string) (*Selector, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, selector, err)
	}
	return &Selector{source: selector, matcher: matcher}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(selector string) *Selector {
	sel, err := Compile(selector)
	if err != nil {
		panic(err)
	}
	return sel
}

// String returns the selector source.
func (s *Selector) String() string {
	return s.source
}

// Match reports whether n matches the selector.
func (s *Selector) Match(n *html.Node) bool {
	if s == nil || n == nil || n.Type != html.ElementNode {
		return false
	}
	return s.matcher.Match(n)
}

// collect returns descendants of root (root excluded) in document order.
func collect(root *html.Node, sel *Selector, first bool) []*Element {
	if first {
		if n := cascadia.Query(root, sel.matcher); n != nil {
			return []*Element{{node: n}}
		}
		return nil
	}
	nodes := cascadia.QueryAll(root, sel.matcher)
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Element{node: n})
	}
	return out
}
