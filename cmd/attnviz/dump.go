package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"attnviz-go/internal/tokens"
)

func newDumpCmd(a *app) *cobra.Command {
	var showTokens bool
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print the header and token table of an attention file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			info := s.Info()
			fmt.Fprintf(out, "file=%s tokens=%d rows=%d cols=%d scores=%d expected=%d shape_mismatch=%v trailing=%d\n",
				info.Path, info.Tokens, info.Rows, info.Cols, info.Scores,
				uint64(info.Rows)*uint64(info.Cols), info.ShapeMismatch, info.Trailing)

			d := tokens.Displayer{BOS: a.cfg.BOSToken}
			toks := s.Tokens()
			fmt.Fprintf(out, "text=%q\n", d.Text(toks))
			if !showTokens {
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"INDEX", "TOKEN", "DISPLAY", "BYTES"})
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetNoWhiteSpace(true)
			table.SetTablePadding("  ")
			table.SetAutoWrapText(false)
			for i, tok := range toks {
				table.Append([]string{
					strconv.Itoa(i),
					strconv.Quote(tok),
					strconv.Quote(d.Display(tok)),
					strconv.Itoa(len(tok)),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&showTokens, "tokens", true, "Print the token table")
	return cmd
}
