package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"attnviz-go/internal/attention"
	"attnviz-go/internal/config"
	"attnviz-go/internal/logutil"
	"attnviz-go/internal/render"
	"attnviz-go/internal/tokens"
	"attnviz-go/pkg/attnviz"
)

type app struct {
	cfgPath  string
	dotenv   string
	logLevel string
	noColor  bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "attnviz",
		Short:         "Inspect transformer attention heat-maps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", config.DefaultFile, "Path to YAML config")
	cmd.PersistentFlags().StringVar(&a.dotenv, "env-file", ".env", "Path to .env file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable ANSI colour output")

	cmd.AddCommand(
		newDumpCmd(a),
		newShowCmd(a),
		newGridCmd(a),
		newExploreCmd(a),
		newEncodeCmd(a),
		newModesCmd(),
	)
	return cmd
}

func (a *app) setup(stderr io.Writer) error {
	cfg, err := config.Resolve(a.cfgPath, a.dotenv)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	level, err := logutil.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logutil.NewLogger(stderr, level)
	slog.SetDefault(a.logger)
	return nil
}

// dataPath picks the positional file argument, falling back to config.
func (a *app) dataPath(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if a.cfg.Data == "" {
		return "", fmt.Errorf("no attention file given and no data path configured")
	}
	return a.cfg.Data, nil
}

func (a *app) load(cmd *cobra.Command, args []string) (*attnviz.Session, error) {
	path, err := a.dataPath(args)
	if err != nil {
		return nil, err
	}
	s, err := attnviz.Load(cmd.Context(), path, attnviz.Options{
		Strict:        a.cfg.Strict,
		CacheRowStats: a.cfg.CacheRowStats,
		Logger:        a.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("load attention data %s: %w", path, err)
	}
	return s, nil
}

func (a *app) renderer(out io.Writer) *render.Renderer {
	r := render.New(out)
	r.Color = render.RGB{R: a.cfg.Color.R, G: a.cfg.Color.G, B: a.cfg.Color.B}
	r.Display = tokens.Displayer{BOS: a.cfg.BOSToken}
	r.Width = a.cfg.Width

	f, isFile := out.(*os.File)
	r.UseColor = !a.noColor && isFile && render.IsTerminal(f)
	if r.Width == 0 && isFile {
		r.Width = render.TerminalWidth(f, render.DefaultWidth)
	}
	return r
}

// modeFlag resolves --mode, defaulting to the configured mode.
func (a *app) modeFlag(cmd *cobra.Command, m *attention.Mode) attention.Mode {
	if cmd.Flags().Changed("mode") {
		return *m
	}
	return a.cfg.Mode
}

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "Print the intensity mode cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, m := range attention.Modes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", m, attention.Next(m))
			}
			return nil
		},
	}
}
