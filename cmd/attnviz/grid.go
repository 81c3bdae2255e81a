package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"attnviz-go/internal/attention"
)

func newGridCmd(a *app) *cobra.Command {
	var mode attention.Mode
	cmd := &cobra.Command{
		Use:   "grid [file]",
		Short: "Render every query row as a heat grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			mode = a.modeFlag(cmd, &mode)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mode=%s\n", mode)
			return a.renderer(out).Grid(s.Tokens(), s.All(mode))
		},
	}
	cmd.Flags().Var(&mode, "mode", "Intensity mode (raw, normalized, amplified)")
	return cmd
}
