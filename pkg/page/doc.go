// Package page holds the HTML surface the site is assembled on. A Document
// wraps a parsed golang.org/x/net/html tree and exposes the small set of
// operations the renderers and the binder need: CSS-style queries, text and
// attribute writes, and replacing a container's children with markup.
package page
