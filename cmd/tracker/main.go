package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker"
	"github.com/tc39tracker/tracker/integrations/prometheus"
	"github.com/tc39tracker/tracker/internal/config"
)

const Version = "0.1.0"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		confPath  string
		logCloser io.Closer
	)

	cmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Render the TC39 proposal tracker",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("couldn't load .env: %w", err)
			}
			if err := config.Load(confPath); err != nil {
				return err
			}
			closer, err := tracker.SetupLogging(config.Common.Debug, config.Common.LogDir)
			if err != nil {
				return fmt.Errorf("couldn't set up logging: %w", err)
			}
			logCloser = closer
			if err := config.LoadFlags(cmd.Context(), config.Common.FlagsPath); err != nil {
				return err
			}
			prometheus.InitMetrics()
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser == nil {
				return
			}
			if err := logCloser.Close(); err != nil {
				slog.Warn("Couldn't close log file", slog.Any("err", err))
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&confPath, "config", "c", "./config.toml", "Config path")

	cmd.AddCommand(buildCmd(), serveCmd(), cssCmd(), checkCmd(), flagsCmd())
	return cmd
}
