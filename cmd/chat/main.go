// Command chat is the terminal client of the healthcare chat backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/adapter/backend"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/config"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/observability"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/ui/console"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/ui/tui"
)

const defaultTUILogFile = "chat.log"

type flags struct {
	configPath string
	backendURL string
	mode       string
	timeout    time.Duration
	logLevel   string
	logFile    string
	skipHealth bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		f       flags
		cfg     *config.Config
		logger  zerolog.Logger
		closeFn func() error
	)

	cmd := &cobra.Command{
		Use:          "chat",
		Short:        "Chat with the AI healthcare assistant",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(f.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, f, cfg)
			if err := cfg.Client.Validate(); err != nil {
				return err
			}

			// the full-screen UI owns the terminal, so its logs go to a file
			opts := observability.Options{
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Console: true,
				Service: "chat",
			}
			if resolveMode(cfg.Client.Mode) == config.ModeTUI && opts.File == "" {
				opts.File = defaultTUILogFile
			}
			logger, closeFn, err = observability.Setup(opts)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeFn != nil {
				return closeFn()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, f, logger)
		},
	}

	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&f.backendURL, "backend-url", "", "chat backend base URL")
	cmd.Flags().StringVar(&f.mode, "mode", "", "ui mode: auto, tui or plain")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "request timeout, 0 waits indefinitely")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&f.skipHealth, "skip-health-check", false, "do not probe the backend on startup")

	return cmd
}

// applyFlags overrides the loaded configuration with the flags the user set.
func applyFlags(cmd *cobra.Command, f flags, cfg *config.Config) {
	if cmd.Flags().Changed("backend-url") {
		cfg.Client.BackendURL = f.backendURL
	}
	if cmd.Flags().Changed("mode") {
		cfg.Client.Mode = f.mode
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Client.RequestTimeout = f.timeout
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = f.logFile
	}
}

// resolveMode turns ModeAuto into the mode the terminal supports.
func resolveMode(mode string) string {
	if mode != config.ModeAuto {
		return mode
	}
	if isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd()) {
		return config.ModeTUI
	}
	return config.ModePlain
}

func run(ctx context.Context, cfg *config.Config, f flags, logger zerolog.Logger) error {
	client := backend.NewClient(cfg.Client.BackendURL, cfg.Client.RequestTimeout)

	if !f.skipHealth {
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		health, err := client.Health(checkCtx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("backend", cfg.Client.BackendURL).Msg("backend health check failed")
		} else {
			logger.Info().Str("model", health.Model).Str("mode", health.Mode).Msg("backend is up")
		}
	}

	mode := resolveMode(cfg.Client.Mode)
	log.Debug().Str("mode", mode).Msg("starting chat client")

	switch mode {
	case config.ModeTUI:
		err := tui.Run(ctx, client, tui.Options{
			Suggestions: cfg.Client.Suggestions,
			Logger:      logger,
		})
		if err != nil && ctx.Err() == nil {
			return errors.Wrap(err, "run terminal ui")
		}
		return nil
	default:
		c := console.New(client, os.Stdin, os.Stdout,
			console.WithSuggestions(cfg.Client.Suggestions),
			console.WithLogger(logger),
		)
		if err := c.Run(ctx); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout)
		return nil
	}
}
