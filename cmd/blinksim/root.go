//go:build !tinygo

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"blinky-go/config"
	"blinky-go/errcode"
	"blinky-go/sysclock"
)

type options struct {
	Board       string
	Config      string
	Frequency   uint32
	MetricsAddr string
	Script      string
	LogLevel    string

	// clock replaces the wall-clock ticker in tests.
	clock sysclock.Clock
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "blinksim",
		Short:        "Host simulator for the blink sequencer",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newBoardsCmd())
	return root
}

func newBoardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List built-in board descriptors",
		Run: func(cmd *cobra.Command, args []string) {
			for _, b := range config.Boards() {
				cmd.Println(b)
			}
		},
	}
}

func newRunCmd() *cobra.Command {
	o := &options{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the sequencer on simulated pins",
		Long: `Run the sequencer on simulated pins.

Button commands (from --script, separated by ';', then stdin, one per line):
  p | push          press the button
  r | release       release the button
  c | click | ""    press, wait 50ms, release
  w | wait <ms>     pause
  q | quit          stop the simulation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd.Flags(), o)
			if err != nil {
				return err
			}
			log, err := newLogger(o.LogLevel)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return simulate(ctx, o, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), log)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.Board, "board", "b", "hifive1b", "built-in board descriptor")
	f.StringVarP(&o.Config, "config", "c", "", "TOML file overriding the board descriptor")
	f.Uint32VarP(&o.Frequency, "frequency", "f", sysclock.DefaultFrequencyHz, "tick frequency in Hz")
	f.StringVar(&o.MetricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	f.StringVarP(&o.Script, "script", "s", "", "button commands to run before stdin")
	f.StringVar(&o.LogLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

// resolveConfig applies flag > file > built-in precedence.
func resolveConfig(fs *pflag.FlagSet, o *options) (config.Config, error) {
	changed := map[string]bool{}
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed[f.Name] = true
		}
	})

	var (
		cfg config.Config
		err error
	)
	if o.Config != "" {
		cfg, err = config.Load(o.Config, o.Board)
		if err == nil && changed["board"] && cfg.Board != o.Board {
			err = errcode.Wrap(errcode.InvalidParams, "config",
				"--board "+o.Board+" conflicts with file board "+cfg.Board, nil)
		}
	} else {
		cfg, err = config.Lookup(o.Board)
	}
	if err != nil {
		return config.Config{}, err
	}
	if changed["frequency"] {
		cfg.FrequencyHz = o.Frequency
	}
	return cfg, cfg.Validate()
}

func newLogger(level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "log-level", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})), nil
}
