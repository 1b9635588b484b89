// Package main is the pagesync demo: it opens a text file in side-by-side
// pager panes and keeps their pages synchronized, each pane one page ahead
// of the pane to its left.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pagesync/internal/config"
	"github.com/dshills/pagesync/internal/engine"
	"github.com/dshills/pagesync/internal/hook"
	"github.com/dshills/pagesync/internal/logging"
	"github.com/dshills/pagesync/internal/pager"
	"github.com/dshills/pagesync/internal/redisplay"
	"github.com/dshills/pagesync/internal/viewer"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	panes    int
	delay    time.Duration
	step     int
	logLevel string
	logFile  string
	file     string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg := config.Default()
	cfg, err := cfg.FromEnv(config.DefaultEnvPrefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	cfg.RedisplayDelay = opts.delay
	cfg.PageStep = opts.step
	cfg.LogLevel = opts.logLevel
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return 1
	}

	text, err := os.ReadFile(opts.file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(cfg.LogLevel, opts.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	// Ensure the terminal is restored on all exit paths
	defer screen.Fini()

	_, height := screen.Size()
	doc := pager.NewDocument(opts.file, string(text), height-1)

	hooks := hook.NewManager()
	pgr := pager.New(screen, doc, hooks)
	pgr.Layout(opts.panes)

	registry := viewer.NewRegistry()
	registry.Register(pgr)

	sched := redisplay.NewScheduler(cfg.RedisplayDelay)
	defer sched.Stop()

	eng := engine.New(registry, hooks, sched, pgr,
		engine.WithLogger(log.WithComponent("engine")),
		engine.WithPageStep(cfg.PageStep))
	eng.AutoEnable(pager.Mode)
	for _, mode := range cfg.EnabledModes {
		if !eng.AutoEnable(mode) {
			log.Warn("mode %q has no registered viewer, not enabled", mode)
		}
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	log.Info("opened %s: %d pages in %d panes", opts.file, doc.PageCount(), opts.panes)
	pgr.Draw()

	return eventLoop(screen, pgr)
}

// eventLoop polls terminal events until the user quits.
func eventLoop(screen tcell.Screen, pgr *pager.Pager) int {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			return 0
		case *tcell.EventResize:
			screen.Sync()
			pgr.Relayout()
			pgr.Draw()
		case *tcell.EventKey:
			pane := pgr.Focused()
			if pane == nil {
				continue
			}
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
				return 0
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return 0
			case ev.Key() == tcell.KeyTab:
				pgr.FocusNext()
			case ev.Key() == tcell.KeyRight || ev.Key() == tcell.KeyPgDn,
				ev.Key() == tcell.KeyRune && (ev.Rune() == 'n' || ev.Rune() == ' '):
				pgr.Navigate(pane, pager.ActionPageNext)
			case ev.Key() == tcell.KeyLeft || ev.Key() == tcell.KeyPgUp,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
				pgr.Navigate(pane, pager.ActionPagePrev)
			case ev.Key() == tcell.KeyHome,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'g':
				pgr.Navigate(pane, pager.ActionPageFirst)
			case ev.Key() == tcell.KeyEnd,
				ev.Key() == tcell.KeyRune && ev.Rune() == 'G':
				pgr.Navigate(pane, pager.ActionPageLast)
			}
		}
	}
}

// newLogger builds the logger, writing to a file if one was requested and
// discarding output otherwise (stderr is owned by the terminal UI).
func newLogger(level, path string) (*logging.Logger, func(), error) {
	if path == "" {
		return logging.Discard, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	var out io.Writer = f
	return logging.New(logging.ParseLevel(level), out), func() { f.Close() }, nil
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.IntVar(&opts.panes, "panes", 2, "Number of side-by-side panes")
	flag.DurationVar(&opts.delay, "delay", time.Millisecond, "Redisplay debounce delay")
	flag.IntVar(&opts.step, "step", 1, "Page offset between adjacent panes")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pagesync - synchronized multi-pane pager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pagesync [options] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  n, space, right, pgdn   next page\n")
		fmt.Fprintf(os.Stderr, "  p, left, pgup           previous page\n")
		fmt.Fprintf(os.Stderr, "  g/G, home/end           first/last page\n")
		fmt.Fprintf(os.Stderr, "  tab                     switch pane\n")
		fmt.Fprintf(os.Stderr, "  q, esc                  quit\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("pagesync %s (%s)\n", version, commit)
		os.Exit(0)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	opts.file = flag.Arg(0)

	if opts.panes < 2 {
		fmt.Fprintln(os.Stderr, "Error: at least 2 panes are required")
		os.Exit(1)
	}

	return opts
}
