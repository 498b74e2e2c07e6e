package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/rubiojr/faststring/config"
	"github.com/rubiojr/faststring/logging"
	"github.com/rubiojr/faststring/luamod"
	"github.com/rubiojr/faststring/mstring"
	"github.com/rubiojr/faststring/ops"
)

// Execute runs the faststring CLI with the given version string.
func Execute(version string) {
	cmd := New(version, os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state every subcommand shares once flags and the
// environment have been resolved.
type app struct {
	stdout, stderr io.Writer

	cfg     config.Config
	color   bool
	log     *zap.Logger
	reg     *prometheus.Registry
	metrics *mstring.Metrics
}

// New builds the command tree. Output goes to stdout and stderr so tests
// can capture it.
func New(version string, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	return &cli.Command{
		Name:                   "faststring",
		Usage:                  "A growable mutable byte buffer, scriptable from Lua and a small ops language",
		Version:                version,
		Writer:                 stdout,
		ErrWriter:              stderr,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Load settings from this .env file if it exists",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Minimum log level: debug, info, warn, error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: text or json",
			},
			&cli.IntFlag{
				Name:  "max-capacity",
				Usage: "Fail any buffer allocation above this many bytes (0 = unlimited)",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Print buffer allocation counters to stderr on exit",
			},
		},
		Before: a.setup,
		After:  a.teardown,
		Commands: []*cli.Command{
			{
				Name:            "run",
				Usage:           "Run a Lua script with the mstring module loaded",
				ArgsUsage:       "<file.lua> [args...]",
				SkipFlagParsing: true,
				Action:          a.runAction,
			},
			{
				Name:      "exec",
				Usage:     "Run an ops script",
				ArgsUsage: "<file.ms>",
				Action:    a.execAction,
			},
			{
				Name:      "eval",
				Usage:     "Run ops given on the command line, one statement per argument",
				ArgsUsage: "<statement>...",
				Action:    a.evalAction,
			},
			{
				Name:   "ops",
				Usage:  "List the available ops",
				Action: a.opsAction,
			},
			{
				Name:  "bench",
				Usage: "Compare MString against native Go strings",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "filter",
						Aliases: []string{"f"},
						Usage:   "Run only benchmarks whose name contains this substring",
					},
					&cli.IntFlag{
						Name:    "iterations",
						Aliases: []string{"n"},
						Usage:   "Operations per benchmark run",
						Value:   1000,
					},
					&cli.DurationFlag{
						Name:  "duration",
						Usage: "Minimum measuring time per benchmark",
						Value: time.Second,
					},
				},
				Action: a.benchAction,
			},
		},
	}
}

// setup resolves configuration: .env file, then environment, then flags.
func (a *app) setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.LogFormat = cmd.String("log-format")
	}
	if cmd.IsSet("max-capacity") {
		cfg.MaxCapacity = cmd.Int("max-capacity")
	}
	if cmd.Bool("no-color") {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return ctx, err
	}
	a.cfg = cfg
	a.color = !bool(cfg.NoColor) && isTerminal(a.stderr)

	a.reg = prometheus.NewRegistry()
	a.metrics = mstring.NewMetrics(a.reg)
	lc := logging.DefaultConfig()
	if cfg.LogFormat != "" {
		lc.Format = cfg.LogFormat
	}
	if cfg.LogLevel != "" {
		lc.Level = cfg.LogLevel
	}
	lc.Output = zapcore.AddSync(a.stderr)
	lc.Color = a.color
	lc.Registerer = a.reg
	a.log, err = logging.NewLogger(lc)
	if err != nil {
		return ctx, err
	}
	a.log.Debug("configured",
		zap.String("log_level", cfg.LogLevel),
		zap.Int("max_capacity", cfg.MaxCapacity),
		zap.Bool("color", a.color))
	return ctx, nil
}

func (a *app) teardown(ctx context.Context, cmd *cli.Command) error {
	defer a.log.Sync() //nolint:errcheck // stderr sync errors are not actionable
	if cmd.Bool("metrics") && a.reg != nil {
		return dumpMetrics(a.stderr, a.reg)
	}
	return nil
}

// options returns the buffer options every command applies.
func (a *app) options() []mstring.Option {
	opts := []mstring.Option{
		mstring.WithLogger(a.log),
		mstring.WithMetrics(a.metrics),
	}
	if a.cfg.MaxCapacity > 0 {
		opts = append(opts, mstring.WithMaxCapacity(a.cfg.MaxCapacity))
	}
	return opts
}

func (a *app) runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: faststring run <file.lua> [args...]")
	}
	path := cmd.Args().First()
	L := luamod.NewState(a.options()...)
	defer L.Close()
	L.SetContext(ctx)
	installPrint(L, a.stdout)
	setArgs(L, path, cmd.Args().Tail())

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (a *app) execAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: faststring exec <file.ms>")
	}
	path := cmd.Args().First()
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := a.exec(string(src)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (a *app) evalAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: faststring eval <statement>...")
	}
	return a.exec(strings.Join(cmd.Args().Slice(), "\n"))
}

func (a *app) exec(src string) error {
	s, err := ops.NewSession(a.stdout, a.log, a.options()...)
	if err != nil {
		return err
	}
	defer s.Close()
	return ops.Exec(src, s)
}

func (a *app) opsAction(ctx context.Context, cmd *cli.Command) error {
	_, err := fmt.Fprint(a.stdout, ops.Format())
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
