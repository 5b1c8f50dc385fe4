package main

import (
	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker/internal/config"
)

func flagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "Print the effective runtime flags as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.WriteFlags(cmd.OutOrStdout())
		},
	}
}
