// vista-demo is a small showcase for the framework: a desktop with an
// overlapping window, focusable buttons, a modal dialog, and live
// command enablement.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/cellforge/vista/app"
	"github.com/cellforge/vista/command"
	"github.com/cellforge/vista/config"
	"github.com/cellforge/vista/logging"
	"github.com/cellforge/vista/terminal"
)

var (
	flagConfig  string
	flagLogFile string
	flagNoMouse bool
	flagColor   string
)

var rootCmd = &cobra.Command{
	Use:           "vista-demo",
	Short:         "Showcase for the vista terminal-UI framework",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func main() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file (TOML)")
	rootCmd.Flags().StringVar(&flagLogFile, "log", "", "log file path")
	rootCmd.Flags().BoolVar(&flagNoMouse, "no-mouse", false, "disable mouse reporting")
	rootCmd.Flags().StringVar(&flagColor, "color", "", "color mode: auto, 256, truecolor")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vista-demo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal")
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagNoMouse {
		cfg.MouseEnabled = false
	}
	if flagColor != "" {
		cfg.ColorMode = flagColor
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer := logging.New(cfg.Log)
	defer closer.Close()

	a, err := app.New(terminal.NewTTY(), app.Options{
		Config:   cfg,
		Logger:   logger,
		Registry: command.Default(),
	})
	if err != nil {
		return err
	}
	buildDesktop(a)

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Run(ctx)
}
