package sections

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-sheetsite/pkg/render"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

var _ render.SectionRenderer = (*ReviewsRenderer)(nil)

// DefaultRating is used when a review has no usable rating.
const DefaultRating = 5

// RatingGlyph is repeated once per rating point.
const RatingGlyph = "★"

// ReviewsRenderer renders .review-card entries with a star row.
type ReviewsRenderer struct {
	*core
}

func (r *ReviewsRenderer) Section() sheet.SectionID { return sheet.SectionReviews }
func (r *ReviewsRenderer) Selector() string         { return SelectorReviews }

func (r *ReviewsRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	cards := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		text, textHTML := r.text(row, "text", "")
		cards = append(cards, map[string]any{
			"rating":    strconv.Itoa(Rating(row.Get("rating"), r.cfg.maxRating)),
			"glyph":     RatingGlyph,
			"text":      text,
			"text_html": textHTML,
			"author":    row.Get("author"),
		})
	}
	return r.execute(ctx, "reviews", map[string]any{"cards": cards})
}

// Rating coerces a rating cell to a glyph count. Blank, non-numeric, or
// negative values fall back to DefaultRating; fractions are truncated and the
// result is capped at max when max is positive.
func Rating(raw string, max int) int {
	fallback := DefaultRating
	if max > 0 && fallback > max {
		fallback = max
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return fallback
	}

	n := int(value)
	if max > 0 && n > max {
		n = max
	}
	return n
}
