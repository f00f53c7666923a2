package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// loadWorkbook reads one tab of a local .xlsx export and re-encodes it as the
// same tab separated text the published URL would return.
func loadWorkbook(ctx context.Context, location string) ([]byte, error) {
	path, tab, ok := sheet.SplitWorkbookLocation(location)
	if !ok {
		return nil, fmt.Errorf("sheet loader: invalid workbook location %q", location)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheet loader: open workbook %s: %w", path, err)
	}
	defer func() {
		_ = book.Close()
	}()

	rows, err := book.GetRows(tab)
	if err != nil {
		return nil, fmt.Errorf("sheet loader: read tab %q: %w", tab, err)
	}

	var b strings.Builder
	for idx, cells := range rows {
		if idx > 0 {
			b.WriteByte('\n')
		}
		for col, cell := range cells {
			if col > 0 {
				b.WriteRune(sheet.DefaultSeparator)
			}
			b.WriteString(flattenCell(cell))
		}
	}
	return []byte(b.String()), nil
}

// flattenCell keeps multi-line cells on one TSV line; the parser has no
// quoting rules.
func flattenCell(cell string) string {
	if !strings.ContainsAny(cell, "\t\r\n") {
		return cell
	}
	return strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ").Replace(cell)
}
