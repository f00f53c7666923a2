package sections

import (
	"context"
	"strconv"

	"github.com/goliatone/go-sheetsite/pkg/render"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

var _ render.SectionRenderer = (*FAQRenderer)(nil)

// FAQRenderer renders .faq-item entries as a single-open accordion whose
// first item starts expanded.
type FAQRenderer struct {
	*core
}

func (r *FAQRenderer) Section() sheet.SectionID { return sheet.SectionFAQ }
func (r *FAQRenderer) Selector() string         { return SelectorFAQ }

func (r *FAQRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	accordion := NewAccordion(len(rows))
	items := make([]map[string]any, 0, len(rows))
	for idx, row := range rows {
		answer, answerHTML := r.text(row, "answer", "")
		items = append(items, map[string]any{
			"index":       strconv.Itoa(idx),
			"question":    row.Get("question"),
			"answer":      answer,
			"answer_html": answerHTML,
			"active":      accordion.IsOpen(idx),
		})
	}
	return r.execute(ctx, "faq", map[string]any{"items": items})
}
