package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tc39tracker/tracker"
)

// checkCmd reports every data-integrity problem in the dataset, including the
// ones a build only warns about.
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the proposal dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			problems := 0
			for _, e := range ds.Entries {
				p := e.Proposal
				if err := p.Validate(); err != nil {
					problems++
					fmt.Fprintf(out, "%s: %v\n", p.Title, err)
				}
				if h, ok := p.Hosting.(tracker.ForgeHosted); ok {
					if _, ok := h.Identity(); !ok {
						problems++
						fmt.Fprintf(out, "%s: couldn't parse repository from %q\n", p.Title, h.Link)
					}
				}
			}
			if problems > 0 {
				return fmt.Errorf("%d problems in %d proposals", problems, len(ds.Entries))
			}
			fmt.Fprintf(out, "%d proposals, no problems\n", len(ds.Entries))
			return nil
		},
	}
}
