package site

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/a-h/templ"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/mdrenderer"
	"github.com/tc39tracker/tracker/theme"
	"github.com/tc39tracker/tracker/web/components"
)

// Pages renders complete documents. It is shared by the static build and the
// preview server and is safe for concurrent use.
type Pages struct {
	Theme      theme.Theme
	SiteTitle  string
	Markdown   *mdrenderer.Renderer
	Assets     *Assets
	Disclaimer bool
	FontsURL   string
	// ECMABaseURL prefixes the standards link in the sidebar; empty uses
	// components.DefaultECMABaseURL.
	ECMABaseURL string
}

func (pg *Pages) layout(ctx context.Context, title, description string, body templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	err := components.Layout(components.LayoutParams{
		Theme:       pg.Theme,
		SiteTitle:   pg.SiteTitle,
		Title:       title,
		Description: description,
		Stylesheets: []string{StylesheetName(pg.Theme)},
		HashNamer:   pg.Assets,
		FontsURL:    pg.FontsURL,
		Content:     body,
	}).Render(ctx, &buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IndexGroups orders the dataset for the index page. Proposals with an unknown
// stage cannot be placed and are left out.
func IndexGroups(ctx context.Context, ds *content.Dataset) []components.StageGroup {
	byStage := ds.ByStage()
	var groups []components.StageGroup
	for _, s := range tracker.StagesDescending() {
		groups = append(groups, components.StageGroup{Stage: s, Proposals: byStage[s]})
		delete(byStage, s)
	}
	for s, ps := range byStage {
		for _, p := range ps {
			slog.WarnContext(ctx, "Proposal not listed on the index", slog.String("proposal", p.Title), slog.String("stage", string(s)))
		}
	}
	return groups
}

func (pg *Pages) Index(ctx context.Context, ds *content.Dataset) ([]byte, error) {
	return pg.layout(ctx, "", "TC39 proposals by stage", components.ProposalIndex(pg.Theme, IndexGroups(ctx, ds)))
}

func (pg *Pages) Stages(ctx context.Context) ([]byte, error) {
	return pg.layout(ctx, "Stages", "The stages of the TC39 process", components.StageList(pg.Theme, tracker.StagesDescending(), pg.Disclaimer))
}

// Readme renders and sanitizes the README of e. Rendering problems only cost
// the README, never the page.
func (pg *Pages) Readme(ctx context.Context, e *content.Entry) string {
	if e.Readme == "" {
		return ""
	}
	out, err := components.RenderReadme(pg.Markdown, e.Readme, e.ReadmeBase)
	if err != nil {
		slog.WarnContext(ctx, "Couldn't render README", slog.String("proposal", e.Proposal.Title), slog.Any("err", err))
		return ""
	}
	return out
}

// Proposal renders the page of e around an already rendered README fragment.
func (pg *Pages) Proposal(ctx context.Context, e *content.Entry, readme string) ([]byte, error) {
	p := e.Proposal
	body := components.ProposalPage(pg.Theme, p.TitleHTML, readme, components.DetailsSidebar(pg.Theme, p, components.DetailsOptions{ECMABaseURL: pg.ECMABaseURL}))
	page, err := pg.layout(ctx, p.Title, "", body)
	if err != nil {
		return nil, fmt.Errorf("couldn't render proposal %q: %w", p.Title, err)
	}
	return page, nil
}

func (pg *Pages) Champion(ctx context.Context, ds *content.Dataset, name string) ([]byte, error) {
	championed, authored, err := ds.ProposalsOf(name)
	if err != nil {
		return nil, err
	}
	return pg.layout(ctx, name, "", components.ChampionPage(pg.Theme, name, championed, authored))
}

func (pg *Pages) Status(ctx context.Context, code int, message string) ([]byte, error) {
	return pg.layout(ctx, message, "", components.Status(code, message))
}
