package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"attnviz-go/internal/attention"
	"attnviz-go/internal/logutil"
	"attnviz-go/internal/render"
	"attnviz-go/pkg/attnviz"
)

const exploreHelp = `Commands:
  <n>            hover token n
  -              clear the hover
  m, mode        cycle raw -> normalized -> amplified
  mode <name>    switch to a mode by name
  table          toggle the per-key table
  help           show this help
  q, quit, exit  leave`

// explorer is the interactive hover state: one hovered token and one mode.
type explorer struct {
	session   *attnviz.Session
	r         *render.Renderer
	out       io.Writer
	logger    *slog.Logger
	toks      []string
	mode      attention.Mode
	hovered   int
	showTable bool
}

func newExplorer(s *attnviz.Session, r *render.Renderer, mode attention.Mode, logger *slog.Logger) *explorer {
	return &explorer{
		session: s,
		r:       r,
		out:     r.Out,
		logger:  logger,
		toks:    s.Tokens(),
		mode:    mode,
		hovered: -1,
	}
}

func (e *explorer) prompt() string {
	if e.hovered < 0 {
		return fmt.Sprintf("[%s] > ", e.mode)
	}
	return fmt.Sprintf("[%s q=%d] > ", e.mode, e.hovered)
}

func (e *explorer) draw() error {
	intensities := e.session.Intensities(e.hovered, e.mode)
	logutil.Trace(e.logger, "hover", "session", e.session.Info().ID, "query", e.hovered, "mode", e.mode)
	if err := e.r.Line(e.toks, intensities, e.hovered); err != nil {
		return err
	}
	if e.showTable && e.hovered >= 0 {
		e.r.Table(e.toks, e.session.Row(e.hovered), intensities, e.hovered)
	}
	return nil
}

// handle applies one input line and redraws. Errors are user mistakes
// and leave the state unchanged.
func (e *explorer) handle(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	switch fields[0] {
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(e.out, exploreHelp)
		return false, nil
	case "-":
		e.hovered = -1
	case "table":
		e.showTable = !e.showTable
	case "m", "mode":
		if len(fields) > 1 {
			m, err := attention.ParseMode(fields[1])
			if err != nil {
				return false, err
			}
			e.mode = m
		} else {
			e.mode = e.mode.Next()
		}
		fmt.Fprintf(e.out, "mode=%s\n", e.mode)
	default:
		q, err := strconv.Atoi(fields[0])
		if err != nil {
			return false, fmt.Errorf("unknown command %q (try help)", fields[0])
		}
		if q < 0 || q >= len(e.toks) {
			return false, fmt.Errorf("token %d out of range (0..%d)", q, len(e.toks)-1)
		}
		e.hovered = q
	}
	return false, e.draw()
}

// lineReader is the part of *readline.Instance the hover loop uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// run reads commands until quit, EOF or interrupt. Cancelling ctx closes
// lr, which unblocks a pending read.
func (e *explorer) run(ctx context.Context, lr lineReader) error {
	stop := context.AfterFunc(ctx, func() { lr.Close() })
	defer stop()

	for {
		line, err := lr.Readline()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		quit, err := e.handle(line)
		if err != nil {
			fmt.Fprintf(e.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
		lr.SetPrompt(e.prompt())
	}
}

func newExploreCmd(a *app) *cobra.Command {
	var mode attention.Mode
	cmd := &cobra.Command{
		Use:   "explore [file]",
		Short: "Hover tokens interactively and cycle intensity modes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			e := newExplorer(s, a.renderer(out), a.modeFlag(cmd, &mode), a.logger)

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          e.prompt(),
				InterruptPrompt: "^C",
				EOFPrompt:       "exit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          out,
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			defer rl.Close()

			fmt.Fprintln(out, "Type a token index to hover it, m to cycle modes, help for more.")
			if err := e.draw(); err != nil {
				return err
			}
			return e.run(cmd.Context(), rl)
		},
	}
	cmd.Flags().Var(&mode, "mode", "Starting intensity mode (raw, normalized, amplified)")
	return cmd
}
