package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pulse/config"
	"pulse/daemon"
	"pulse/logging"
	"pulse/model"
	"pulse/monitor"
	"pulse/proc"
	"pulse/ui"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

type tuiOptions struct {
	ConfigPath string
	Verbose    bool
	Rebuild    bool
}

type watchOptions struct {
	ConfigPath string
	Verbose    bool
}

type snapshotOptions struct {
	Interval time.Duration
	Limit    int
	Sort     string
}

// test seams (override in tests)
var (
	runTUIFunc      = runTUI
	runSnapshotFunc = runSnapshot
	runWatchFunc    = runWatch
	isTerminal      = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "tui":
		fs := pflag.NewFlagSet("tui", pflag.ContinueOnError)
		fs.SetOutput(stderr)

		var opts tuiOptions
		fs.StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath(), "config file")
		fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")
		fs.BoolVar(&opts.Rebuild, "rebuild", false, "rebuild the process table on every refresh instead of updating it in place")
		fs.Usage = func() {
			fmt.Fprintln(stderr, "Usage:\n  pulse tui [flags]\n\nFlags:")
			fs.PrintDefaults()
		}
		if err := fs.Parse(args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			return 2
		}
		if !isTerminal() {
			fmt.Fprintln(stderr, "pulse tui needs a terminal; use \"pulse snapshot\" for plain output")
			return 1
		}
		if err := runTUIFunc(opts); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		return 0

	case "watch":
		fs := pflag.NewFlagSet("watch", pflag.ContinueOnError)
		fs.SetOutput(stderr)

		var opts watchOptions
		fs.StringVarP(&opts.ConfigPath, "config", "c", config.DefaultPath(), "config file")
		fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")
		fs.Usage = func() {
			fmt.Fprintln(stderr, "Usage:\n  pulse watch [flags]\n\nFlags:")
			fs.PrintDefaults()
		}
		if err := fs.Parse(args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			return 2
		}
		if err := runWatchFunc(opts, stderr); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		return 0

	case "snapshot":
		fs := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
		fs.SetOutput(stderr)

		var opts snapshotOptions
		fs.DurationVarP(&opts.Interval, "interval", "i", time.Second, "time between the two reads cpu usage is measured over")
		fs.IntVarP(&opts.Limit, "limit", "n", 20, "rows to print (0 for all)")
		fs.StringVarP(&opts.Sort, "sort", "s", "cpu", "sort column: cpu, mem, pid, name or none")
		fs.Usage = func() {
			fmt.Fprintln(stderr, "Usage:\n  pulse snapshot [flags]\n\nFlags:")
			fs.PrintDefaults()
		}
		if err := fs.Parse(args[1:]); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return 0
			}
			return 2
		}
		if _, ok := model.ParseSortColumn(opts.Sort); !ok {
			fmt.Fprintf(stderr, "invalid --sort %q: want cpu, mem, pid, name or none\n", opts.Sort)
			return 2
		}
		if opts.Interval <= 0 {
			fmt.Fprintln(stderr, "invalid --interval: must be positive")
			return 2
		}
		if err := runSnapshotFunc(opts, stdout); err != nil {
			fmt.Fprintln(stderr, "error:", err)
			return 1
		}
		return 0

	case "version", "--version":
		fmt.Fprintln(stdout, "pulse", version)
		return 0

	case "-h", "--help", "help":
		usage(stdout)
		return 0

	default:
		fmt.Fprintf(stderr, "unknown command: %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `pulse %s - live CPU, memory and process monitor

Usage:
  pulse <command> [flags]

Commands:
  tui         Start the interactive dashboard
  watch       Log processes over the CPU or memory threshold
  snapshot    Print the process table once and exit
  version     Print the version
  help        Show this help

Examples:
  pulse tui
  pulse tui --rebuild --verbose
  pulse snapshot --sort mem --limit 10

Use "pulse <command> -h" for more info about a command.
`, version)
}

func runTUI(opts tuiOptions) error {
	cfg, cfgErr := config.Load(opts.ConfigPath)

	logger, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return err
	}
	defer closer.Close()

	log := logging.For(logger, "main")
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("using default config")
	}
	log.WithField("version", version).Info("starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := monitor.New(monitor.Options{
		Provider:   proc.NewSystem(logging.For(logger, "provider")),
		Host:       proc.HostInfo,
		Config:     *cfg,
		ConfigPath: opts.ConfigPath,
		Log:        logging.For(logger, "engine"),
	})

	err = engine.Run(ctx, ui.Options{
		ConfigPath: opts.ConfigPath,
		Rebuild:    opts.Rebuild,
		Log:        logging.For(logger, "ui"),
	})
	log.Info("stopped")
	return err
}

func runWatch(opts watchOptions, w io.Writer) error {
	cfg, cfgErr := config.Load(opts.ConfigPath)

	logger := logging.Console(w, cfg.LogLevel, opts.Verbose)
	log := logging.For(logger, "daemon")
	if cfgErr != nil {
		log.WithError(cfgErr).Warn("using default config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(proc.NewSystem(logging.For(logger, "provider")), *cfg, opts.ConfigPath, log)
	return d.Run(ctx)
}

func runSnapshot(opts snapshotOptions, w io.Writer) error {
	col, _ := model.ParseSortColumn(opts.Sort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	snap, err := monitor.TakeSnapshot(ctx, proc.NewSystem(nil), proc.HostInfo, opts.Interval, col)
	if err != nil {
		return err
	}
	return ui.Render(w, snap.Rows, snap.Sample, snap.Host, opts.Limit)
}
