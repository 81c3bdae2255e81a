package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"attnviz-go/internal/attnbin"
)

// encodeInput is the JSON form accepted by encode. Scores may be a flat
// row-major list or a list of rows; with rows, a zero shape is inferred.
type encodeInput struct {
	Tokens []string        `json:"tokens"`
	Rows   uint32          `json:"rows"`
	Cols   uint32          `json:"cols"`
	Scores json.RawMessage `json:"scores"`
}

func (in encodeInput) matrix() (attnbin.Matrix, error) {
	rows, cols := in.Rows, in.Cols
	var scores []float32
	if len(in.Scores) > 0 {
		var flat []float32
		if err := json.Unmarshal(in.Scores, &flat); err != nil {
			var grid [][]float32
			if err2 := json.Unmarshal(in.Scores, &grid); err2 != nil {
				return attnbin.Matrix{}, fmt.Errorf("scores: want a list or a list of rows: %w", err)
			}
			if rows == 0 {
				rows = uint32(len(grid))
			}
			if cols == 0 && len(grid) > 0 {
				cols = uint32(len(grid[0]))
			}
			for q, row := range grid {
				if uint32(len(row)) != cols {
					return attnbin.Matrix{}, fmt.Errorf("scores row %d has %d values, want %d", q, len(row), cols)
				}
				flat = append(flat, row...)
			}
		}
		scores = flat
	}
	if rows == 0 && cols == 0 && len(scores) > 0 {
		return attnbin.Matrix{}, fmt.Errorf("rows and cols are required for a flat score list")
	}
	return attnbin.New(in.Tokens, rows, cols, scores), nil
}

func newEncodeCmd(a *app) *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Write an attention file from a JSON description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if inPath == "" {
				return fmt.Errorf("--in is required")
			}
			if outPath == "" {
				outPath = a.cfg.Data
			}
			raw, err := os.ReadFile(inPath)
			if err != nil {
				return err
			}
			var in encodeInput
			if err := json.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("parse %s: %w", inPath, err)
			}
			m, err := in.matrix()
			if err != nil {
				return fmt.Errorf("parse %s: %w", inPath, err)
			}
			if err := attnbin.WriteMatrix(outPath, m); err != nil {
				return err
			}
			a.logger.Info("wrote attention data",
				"path", outPath,
				"tokens", len(m.Tokens),
				"rows", m.Rows,
				"cols", m.Cols,
				"shape_mismatch", m.ShapeMismatch(),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s tokens=%d rows=%d cols=%d\n", outPath, len(m.Tokens), m.Rows, m.Cols)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "JSON input with tokens, rows, cols and scores")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (defaults to the configured data path)")
	return cmd
}
