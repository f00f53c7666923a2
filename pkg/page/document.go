package page

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ThemeStyleID is the id of the <style> element holding theme variables.
const ThemeStyleID = "sheetsite-theme"

// Document is a parsed HTML page. It is not safe for concurrent mutation.
type Document struct {
	root *html.Node
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("page: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString parses an in-memory document.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) ([]*Element, error) {
	if d == nil || d.root == nil {
		return nil, ErrNilNode
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	return collect(d.root, sel, false), nil
}

// Query returns the first element matching selector, or nil when nothing
// matches.
func (d *Document) Query(selector string) (*Element, error) {
	if d == nil || d.root == nil {
		return nil, ErrNilNode
	}
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	matches := collect(d.root, sel, true)
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

// Mount replaces the children of the first element matching selector with
// markup. It reports false, without error, when no element matches.
func (d *Document) Mount(selector, markup string) (bool, error) {
	target, err := d.Query(selector)
	if err != nil || target == nil {
		return false, err
	}
	if err := target.SetInnerHTML(markup); err != nil {
		return false, fmt.Errorf("page: mount %q: %w", selector, err)
	}
	return true, nil
}

// SetCSSVariables writes vars as custom properties on :root inside a
// dedicated <style> element in <head>, replacing earlier values. Names gain a
// leading "--" when missing. Values that could escape the declaration
// are dropped.
func (d *Document) SetCSSVariables(vars map[string]string) error {
	if len(vars) == 0 {
		return nil
	}
	head, err := d.Query("head")
	if err != nil {
		return err
	}
	if head == nil {
		return fmt.Errorf("page: set css variables: %w", ErrNilNode)
	}

	style, err := d.Query("style#" + ThemeStyleID)
	if err != nil {
		return err
	}
	if style == nil {
		node := &html.Node{
			Type: html.ElementNode,
			Data: "style",
			Attr: []html.Attribute{{Key: "id", Val: ThemeStyleID}},
		}
		head.node.AppendChild(node)
		style = &Element{node: node}
	}
	return style.SetText(cssRootBlock(vars))
}

// cssUnsafe lists characters that could end the declaration or the style
// element. Names and values containing any of them are dropped.
const cssUnsafe = "<;{}"

func cssRootBlock(vars map[string]string) string {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root{")
	for _, name := range names {
		value := strings.TrimSpace(vars[name])
		key := strings.TrimSpace(name)
		if key == "" || value == "" || strings.ContainsAny(value, cssUnsafe) {
			continue
		}
		if strings.ContainsAny(key, cssUnsafe+": \t\n") {
			continue
		}
		if !strings.HasPrefix(key, "--") {
			key = "--" + key
		}
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(value)
		b.WriteString(";")
	}
	b.WriteString("}")
	return b.String()
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return ErrNilNode
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("page: render: %w", err)
	}
	return nil
}

// Bytes renders the document into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
