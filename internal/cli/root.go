// Package cli provides the command-line interface for showcase.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"showcase/internal/config"
	"showcase/internal/domain"
	"showcase/internal/eventbus"
	"showcase/internal/logging"
	"showcase/internal/motion"
	"showcase/internal/ui"
)

// Version information (set at build time).
var Version = "0.1.0"

// E2EEnv makes the program print a ready marker once the UI is running
const E2EEnv = "SHOWCASE_E2E_TEST"

// Options holds the parsed flags
type Options struct {
	ConfigPath string
	Direction  string
	LogFile    string
	Verbose    bool
	NoWatch    bool
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &Options{}
	rootCmd := &cobra.Command{
		Use:   "showcase",
		Short: "Showcase - a scrollable district page with responsive sliders",
		Long: `Showcase renders a one-page district presentation in the terminal.

Sliders page through their panels in narrow terminals and pan sideways as the
page scrolls in wide ones. Content comes from a TOML file that is reloaded
when it changes.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), opts)
		},
	}

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "content file (default: ./"+config.DefaultFileName+")")
	rootCmd.Flags().StringVar(&opts.Direction, "dir", "", "reading direction, ltr or rtl (default: from the content file)")
	rootCmd.Flags().StringVar(&opts.LogFile, "log-file", logging.DefaultFile, "log file, empty to disable logging")
	rootCmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&opts.NoWatch, "no-watch", false, "don't reload the content file when it changes")

	_ = rootCmd.RegisterFlagCompletionFunc("dir", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ltr", "rtl"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd
}

// Validate checks flag values that cobra cannot
func (o *Options) Validate() error {
	switch strings.ToLower(o.Direction) {
	case "", "ltr", "rtl":
		return nil
	}
	return fmt.Errorf("invalid --dir %q: want ltr or rtl", o.Direction)
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// Run wires the services together and blocks until the program exits
func Run(ctx context.Context, opts *Options) error {
	log, err := logging.New(opts.LogFile, opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bus := eventbus.New(log)
	bus.Subscribe(eventbus.EventContentReloaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ContentReloadedEvent); ok {
			log.Info("Content loaded", zap.String("path", ev.Path))
		}
	})

	configSvc := config.NewConfigServiceWithBus(opts.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}
	if opts.Direction != "" {
		cfg.UI.Direction = domain.ParseDirection(opts.Direction).String()
	}
	log.Info("Page settings",
		zap.Int("sliders", len(cfg.Sliders)),
		zap.String("direction", cfg.UI.Direction))

	motion.Register(cfg.UI.FPS)

	// The first frame must already use the right engines
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	model := ui.NewModel(cfg, configSvc, bus, log, width)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	if !opts.NoWatch {
		watcher, err := config.NewWatcher(configSvc, log,
			func(c *config.Config) { p.Send(ui.ContentReloadedMsg{Config: c}) },
			func(err error) { p.Send(ui.ContentErrorMsg{Err: err}) },
		)
		if err != nil {
			log.Warn("Content watcher unavailable", zap.Error(err))
		} else if err := watcher.Start(ctx); err != nil {
			log.Warn("Content watcher failed to start", zap.Error(err))
		} else {
			defer watcher.Stop()
		}
	}

	if os.Getenv(E2EEnv) == "1" {
		model.OnReady(func() { fmt.Fprint(os.Stdout, "__READY__") })
	}

	if _, err := p.Run(); err != nil {
		log.Error("Program exited with error", zap.Error(err))
		return fmt.Errorf("failed to run program: %w", err)
	}
	log.Info("Program exited")
	return nil
}
