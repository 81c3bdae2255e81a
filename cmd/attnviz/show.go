package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"attnviz-go/internal/attention"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		query     int
		mode      attention.Mode
		showTable bool
	)
	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Render the attention of one query token",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			mode = a.modeFlag(cmd, &mode)

			out := cmd.OutOrStdout()
			r := a.renderer(out)
			toks := s.Tokens()
			intensities := s.Intensities(query, mode)
			if query >= 0 && query < len(toks) {
				fmt.Fprintf(out, "query=%d token=%q mode=%s\n", query, toks[query], mode)
			} else {
				fmt.Fprintf(out, "query=%d mode=%s\n", query, mode)
			}
			if err := r.Line(toks, intensities, query); err != nil {
				return err
			}
			if showTable {
				r.Table(toks, s.Row(query), intensities, query)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&query, "query", "q", -1, "Query token index (-1 = nothing hovered)")
	cmd.Flags().Var(&mode, "mode", "Intensity mode (raw, normalized, amplified)")
	cmd.Flags().BoolVar(&showTable, "table", false, "Also print a per-key table")
	return cmd
}
