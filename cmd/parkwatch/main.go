package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/parkwatch/internal/availability"
	"github.com/mmcdole/parkwatch/internal/config"
	"github.com/mmcdole/parkwatch/internal/domain"
	"github.com/mmcdole/parkwatch/internal/log"
	"github.com/mmcdole/parkwatch/internal/service"
	"github.com/mmcdole/parkwatch/internal/tui"
	"github.com/mmcdole/parkwatch/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	configFile string
	plain      bool
	once       bool
}

func main() {
	var opts options
	var showVersion bool
	flag.StringVar(&opts.configFile, "config", "", "path to config file")
	flag.BoolVar(&opts.plain, "plain", false, "print one line per update instead of the full-screen view")
	flag.BoolVar(&opts.once, "once", false, "fetch once, print the result and exit")
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("parkwatch %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting parkwatch", "version", Version, "server", cfg.Server.URL)

	if cfg.UI.Theme == config.ThemeMono {
		styles.UseMono()
	}

	client := availability.NewClient(cfg.Server.URL, availability.Options{
		ConnectTimeout: cfg.Poll.ConnectTimeout,
		ReadTimeout:    cfg.Poll.ReadTimeout,
		UserAgent:      "parkwatch/" + Version,
	}, logger)

	svc, err := service.NewAvailabilityService(client, cfg.Poll.Interval, logger)
	if err != nil {
		return fmt.Errorf("failed to create availability service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch {
	case opts.once:
		return runOnce(ctx, svc, os.Stdout)
	case opts.plain || !term.IsTerminal(int(os.Stdout.Fd())):
		return runPlain(ctx, svc)
	default:
		return runTUI(ctx, svc, cfg.UI.Title, logger)
	}
}

// runOnce performs a single attempt and reports it on w
func runOnce(ctx context.Context, svc *service.AvailabilityService, w io.Writer) error {
	state := svc.PollOnce(ctx)
	switch {
	case state.HasError():
		return errors.New(state.ErrorMessage)
	case !state.HasData():
		// Interrupted before the attempt produced anything.
		if err := ctx.Err(); err != nil {
			return err
		}
		return errors.New("no availability data received")
	}
	_, err := fmt.Fprintln(w, tui.FormatLine(state))
	return err
}

// runPlain polls until interrupted, writing one line per change
func runPlain(ctx context.Context, svc *service.AvailabilityService) error {
	unsubscribe := svc.Subscribe(tui.NewLineRenderer(os.Stdout))
	defer unsubscribe()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runTUI polls in the background and renders the full-screen view
func runTUI(ctx context.Context, svc *service.AvailabilityService, title string, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan domain.State, 1)
	unsubscribe := svc.Subscribe(tui.NewChannelObserver(updates))
	defer unsubscribe()

	pollDone := make(chan error, 1)
	go func() { pollDone <- svc.Run(ctx) }()

	model := tui.NewModel(title, svc.State(), updates)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	logger.Info("starting TUI")

	_, runErr := p.Run()

	cancel()
	if err := <-pollDone; err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("polling error", "error", err)
	}

	if runErr != nil {
		logger.Error("TUI error", "error", runErr)
		return fmt.Errorf("TUI error: %w", runErr)
	}

	logger.Info("shutting down")
	return nil
}
