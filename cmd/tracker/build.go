package main

import (
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker/internal/config"
	"github.com/tc39tracker/tracker/internal/flags"
	"github.com/tc39tracker/tracker/site"
)

func buildCmd() *cobra.Command {
	var (
		outDir  string
		variant string
	)
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Assemble the static site",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			th, err := resolveTheme(variant)
			if err != nil {
				return err
			}
			ds, err := loadDataset(ctx)
			if err != nil {
				return err
			}
			assets, err := site.NewAssets(th)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = config.Site.OutputDir
			}
			out, err := site.Open(outDir)
			if err != nil {
				return fmt.Errorf("couldn't open output directory: %w", err)
			}

			pages := &site.Pages{
				Theme:       th,
				SiteTitle:   config.Site.Title,
				Markdown:    newMarkdown(th),
				Assets:      assets,
				Disclaimer:  flags.StagesDisclaimer.Value(),
				FontsURL:    flags.FontsURL.Value(),
				ECMABaseURL: flags.ECMABaseURL.Value(),
			}
			rep, err := site.NewBuilder(out, pages, flags.RenderWorkers.Value(), newQueue(ctx, th)).Build(ctx, ds)
			if err != nil {
				return err
			}

			slog.InfoContext(ctx, "Wrote site",
				slog.String("dir", outDir),
				slog.String("pages", humanize.Comma(int64(rep.Pages))),
				slog.Int("failures", len(rep.Failures)),
			)
			if rep.Failed() && flags.StrictBuild.Value() {
				return fmt.Errorf("%d pages could not be built", len(rep.Failures))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to site.output_dir)")
	cmd.Flags().StringVar(&variant, "theme", "", "Theme variant (defaults to the frontend.theme.default flag)")
	return cmd
}
