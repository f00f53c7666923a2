package sections

// Accordion tracks which item of a FAQ list is expanded. At most one item is
// open at a time; the first item starts open.
//
// The browser runtime applies the same rule on click; the renderer uses it to
// emit the initial "active" class.
type Accordion struct {
	size int
	open int
}

const noneOpen = -1

// NewAccordion returns an accordion over size items with item 0 expanded.
func NewAccordion(size int) *Accordion {
	if size < 0 {
		size = 0
	}
	a := &Accordion{size: size, open: noneOpen}
	if size > 0 {
		a.open = 0
	}
	return a
}

// Len reports the number of items.
func (a *Accordion) Len() int {
	return a.size
}

// Toggle handles a click on item idx's header: an open item collapses,
// otherwise idx expands and any other open item collapses. Out of range
// indexes are ignored.
func (a *Accordion) Toggle(idx int) {
	if idx < 0 || idx >= a.size {
		return
	}
	if a.open == idx {
		a.open = noneOpen
		return
	}
	a.open = idx
}

// IsOpen reports whether item idx is expanded.
func (a *Accordion) IsOpen(idx int) bool {
	return a.open != noneOpen && a.open == idx
}

// Open returns the expanded item, if any.
func (a *Accordion) Open() (int, bool) {
	if a.open == noneOpen {
		return 0, false
	}
	return a.open, true
}
