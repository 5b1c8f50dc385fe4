package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker/site"
)

func cssCmd() *cobra.Command {
	var (
		variant string
		outFile string
	)
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet of a theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			th, err := resolveTheme(variant)
			if err != nil {
				return err
			}
			css, err := site.Stylesheet(th)
			if err != nil {
				return err
			}
			if outFile == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), css)
				return err
			}
			return os.WriteFile(outFile, []byte(css), 0644)
		},
	}
	cmd.Flags().StringVar(&variant, "theme", "", "Theme variant")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Output file (defaults to stdout)")
	return cmd
}
