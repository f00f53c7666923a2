package render

import (
	"context"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Fragment is the markup a section renderer produces for its container. The
// orchestrator replaces the container's children with it wholesale.
type Fragment string

// String returns the fragment markup.
func (f Fragment) String() string {
	return string(f)
}

// Empty reports whether the fragment carries no markup.
func (f Fragment) Empty() bool {
	return len(f) == 0
}

// SectionRenderer converts the rows of one section into a markup fragment.
// Implementations are pure: the same rows always produce the same fragment and
// rows are never modified.
type SectionRenderer interface {
	// Section names the content section the renderer consumes.
	Section() sheet.SectionID
	// Selector locates the container the fragment replaces. When the page has
	// no matching container the fragment is discarded.
	Selector() string
	Render(ctx context.Context, rows []sheet.Row) (Fragment, error)
}
