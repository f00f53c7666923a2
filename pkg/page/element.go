package page

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrNilNode is returned when an operation targets a missing node.
var ErrNilNode = errors.New("page: nil node")

// Element is an element node of a Document.
type Element struct {
	node *html.Node
}

// Wrap returns an Element for n, or nil when n is not an element node.
func Wrap(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{node: n}
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Tag returns the lower-case element name.
func (e *Element) Tag() string {
	if e == nil || e.node == nil {
		return ""
	}
	return e.node.Data
}

// Attr returns the value of name and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil || e.node == nil {
		return "", false
	}
	return getAttr(e.node, name)
}

// SetAttr sets name to value, adding the attribute when missing.
func (e *Element) SetAttr(name, value string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	for i := range e.node.Attr {
		if e.node.Attr[i].Namespace == "" && e.node.Attr[i].Key == name {
			e.node.Attr[i].Val = value
			return nil
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
	return nil
}

// RemoveAttr drops name if present.
func (e *Element) RemoveAttr(name string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	attrs := e.node.Attr[:0]
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == name {
			continue
		}
		attrs = append(attrs, attr)
	}
	e.node.Attr = attrs
	return nil
}

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	raw, _ := e.Attr("class")
	return strings.Fields(raw)
}

// HasClass reports whether class is in the class list.
func (e *Element) HasClass(class string) bool {
	return containsString(e.Classes(), class)
}

// AddClass appends class unless already present.
func (e *Element) AddClass(class string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	classes := e.Classes()
	if containsString(classes, class) {
		return nil
	}
	return e.SetAttr("class", strings.Join(append(classes, class), " "))
}

// RemoveClass drops class from the class list.
func (e *Element) RemoveClass(class string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	classes := e.Classes()
	kept := classes[:0]
	for _, existing := range classes {
		if existing != class {
			kept = append(kept, existing)
		}
	}
	return e.SetAttr("class", strings.Join(kept, " "))
}

// IsVoid reports whether the element can never have children.
func (e *Element) IsVoid() bool {
	if e == nil || e.node == nil {
		return false
	}
	_, ok := voidElements[e.node.Data]
	return ok
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	if e == nil || e.node == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetText replaces the children with a single text node. The text is escaped
// on render. Void elements such as <img> cannot hold children and are left
// untouched.
func (e *Element) SetText(text string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	if e.IsVoid() {
		return nil
	}
	removeChildren(e.node)
	if text != "" {
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

// SetInnerHTML parses markup in the context of the element and replaces the
// children with the result. Empty markup clears the element. Void elements
// are left untouched.
func (e *Element) SetInnerHTML(markup string) error {
	if e == nil || e.node == nil {
		return ErrNilNode
	}
	if e.IsVoid() {
		return nil
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.node)
	if err != nil {
		return fmt.Errorf("page: parse fragment for <%s>: %w", e.node.Data, err)
	}
	removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// InnerHTML renders the element's children.
func (e *Element) InnerHTML() (string, error) {
	if e == nil || e.node == nil {
		return "", ErrNilNode
	}
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("page: render <%s> children: %w", e.node.Data, err)
		}
	}
	return buf.String(), nil
}

// QueryAll returns descendants of e matching selector in document order.
func (e *Element) QueryAll(selector string) ([]*Element, error) {
	if e == nil || e.node == nil {
		return nil, ErrNilNode
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return collect(e.node, sel, false), nil
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func getAttr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == name {
			return attr.Val, true
		}
	}
	return "", false
}
