package sections

import (
	"context"
	"strconv"

	"github.com/goliatone/go-sheetsite/pkg/render"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

var (
	_ render.SectionRenderer = (*ServicesRenderer)(nil)
	_ render.SectionRenderer = (*TeamRenderer)(nil)
	_ render.SectionRenderer = (*AreasRenderer)(nil)
	_ render.SectionRenderer = (*WhyUsRenderer)(nil)
)

// ServicesRenderer renders .service-card entries with a staggered reveal.
type ServicesRenderer struct {
	*core
}

func (r *ServicesRenderer) Section() sheet.SectionID { return sheet.SectionServices }
func (r *ServicesRenderer) Selector() string         { return SelectorServices }

func (r *ServicesRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	delays := RevealDelays(len(rows), r.cfg.revealDelay)
	cards := make([]map[string]any, 0, len(rows))
	for idx, row := range rows {
		description, descriptionHTML := r.text(row, "description", "")
		cards = append(cards, map[string]any{
			"icon":             r.icon(row),
			"title":            row.Get("title"),
			"description":      description,
			"description_html": descriptionHTML,
			"delay":            strconv.FormatInt(delays[idx].Milliseconds(), 10),
		})
	}
	return r.execute(ctx, "services", map[string]any{"cards": cards})
}

// TeamRenderer renders .team-card entries.
type TeamRenderer struct {
	*core
}

func (r *TeamRenderer) Section() sheet.SectionID { return sheet.SectionTeam }
func (r *TeamRenderer) Selector() string         { return SelectorTeam }

func (r *TeamRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	cards := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		bio, bioHTML := r.text(row, "bio", "")
		cards = append(cards, map[string]any{
			"name":     row.Get("name"),
			"role":     row.Get("role"),
			"bio":      bio,
			"bio_html": bioHTML,
		})
	}
	return r.execute(ctx, "team", map[string]any{"cards": cards})
}

// AreasRenderer lists the first column of every row, skipping empty values.
type AreasRenderer struct {
	*core
}

func (r *AreasRenderer) Section() sheet.SectionID { return sheet.SectionAreas }
func (r *AreasRenderer) Selector() string         { return SelectorAreas }

func (r *AreasRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	areas := make([]string, 0, len(rows))
	for _, row := range rows {
		if value := row.First(); value != "" {
			areas = append(areas, value)
		}
	}
	return r.execute(ctx, "areas", map[string]any{"areas": areas})
}

// WhyUsRenderer renders the differentiator cards. Unlike services it fills
// missing titles and descriptions with placeholders.
type WhyUsRenderer struct {
	*core
}

const (
	whyUsTitleFallback       = "Title"
	whyUsDescriptionFallback = "Description"
)

func (r *WhyUsRenderer) Section() sheet.SectionID { return sheet.SectionWhyUs }
func (r *WhyUsRenderer) Selector() string         { return SelectorWhyUs }

func (r *WhyUsRenderer) Render(ctx context.Context, rows []sheet.Row) (render.Fragment, error) {
	cards := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		description, descriptionHTML := r.text(row, "description", whyUsDescriptionFallback)
		cards = append(cards, map[string]any{
			"icon":             r.icon(row),
			"title":            row.GetOr("title", whyUsTitleFallback),
			"description":      description,
			"description_html": descriptionHTML,
		})
	}
	return r.execute(ctx, "why_us", map[string]any{"cards": cards})
}
