package sheetsite

import (
	internalLoader "github.com/goliatone/go-sheetsite/internal/sheet/loader"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...sheet.LoaderOption) sheet.Loader {
	return internalLoader.New(sheet.NewLoaderOptions(options...))
}

// ParseTSV converts published TSV text into rows.
func ParseTSV(text string) []sheet.Row {
	return sheet.Parse(text)
}
