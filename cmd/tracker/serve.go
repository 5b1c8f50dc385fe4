package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker/internal/config"
	"github.com/tc39tracker/tracker/internal/flags"
	"github.com/tc39tracker/tracker/web"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the preview server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			th, err := resolveTheme("")
			if err != nil {
				return err
			}
			ds, err := loadDataset(ctx)
			if err != nil {
				return err
			}
			rt, err := web.New(ds, newMarkdown(th), web.Options{
				SiteTitle:      config.Site.Title,
				DefaultVariant: th.Name,
				Disclaimer:     flags.StagesDisclaimer.Value(),
				FontsURL:       flags.FontsURL.Value(),
				ECMABaseURL:    flags.ECMABaseURL.Value(),
				CacheSize:      int64(flags.PageCacheSize.Value()),
				Queue:          newQueue(ctx, th),
			})
			if err != nil {
				return err
			}
			if addr == "" {
				addr = config.Server.Addr()
			}
			return rt.Serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.host:server.port)")
	return cmd
}
