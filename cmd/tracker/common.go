package main

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/tc39tracker/tracker/content"
	"github.com/tc39tracker/tracker/highlight"
	"github.com/tc39tracker/tracker/internal/config"
	"github.com/tc39tracker/tracker/internal/flags"
	"github.com/tc39tracker/tracker/mdrenderer"
	"github.com/tc39tracker/tracker/theme"
)

// resolveTheme falls back to the runtime flag when no variant is given.
func resolveTheme(variant string) (theme.Theme, error) {
	if variant == "" {
		variant = flags.DefaultTheme.Value()
	}
	v, err := theme.ParseVariant(variant)
	if err != nil {
		return theme.Theme{}, err
	}
	return theme.Resolve(v)
}

func loadDataset(ctx context.Context) (*content.Dataset, error) {
	return content.Load(ctx, afero.NewOsFs(), config.Common.DataDir)
}

func newMarkdown(th theme.Theme) *mdrenderer.Renderer {
	if flags.InlineHighlighting.Value() {
		return mdrenderer.New(mdrenderer.WithInlineHighlighting(th.CodeStyle))
	}
	return mdrenderer.New()
}

// newQueue returns nil when code is highlighted inline or not at all.
func newQueue(ctx context.Context, th theme.Theme) *highlight.Queue {
	if !flags.DeferredHighlighting.Value() || flags.InlineHighlighting.Value() {
		return nil
	}
	enh, err := highlight.NewEnhancer(th.CodeStyle)
	if err != nil {
		slog.WarnContext(ctx, "Deferred highlighting disabled", slog.Any("err", err))
		return nil
	}
	return highlight.NewQueue(enh, flags.HighlightWorkers.Value())
}
