// Command chatd serves the healthcare chat backend.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/adapter/llm"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/config"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/observability"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/policy"
	"github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/service"
	httpserver "github.com/ayushtiwari5679/Ai-healthcare-chatbot/internal/transport/http"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		port       int
		mock       bool
		logLevel   string
		cfg        *config.Config
		logger     zerolog.Logger
		closeFn    func() error
	)

	cmd := &cobra.Command{
		Use:          "chatd",
		Short:        "Serve the AI healthcare chat backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if mock {
				cfg.Server.LLMMode = config.LLMModeMock
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}

			logger, closeFn, err = observability.Setup(observability.Options{
				Level:   cfg.Log.Level,
				File:    cfg.Log.File,
				Service: "chatd",
			})
			if err != nil {
				return err
			}
			return cfg.Server.Validate()
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
			return serve(ctx, cfg.Server, logger)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&port, "port", 0, "listen port")
	cmd.Flags().BoolVar(&mock, "mock", false, "answer with the offline mock model")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	return cmd
}

func serve(ctx context.Context, cfg config.ServerConfig, logger zerolog.Logger) error {
	logger.Info().
		Int("port", cfg.Port).
		Str("llm_mode", cfg.LLMMode).
		Str("model", cfg.Model).
		Msg("starting chat backend")

	policyEngine, err := policy.NewEngineFromFile(ctx, cfg.PolicyFile)
	if err != nil {
		return errors.Wrap(err, "initialize policy engine")
	}

	llmClient := llm.NewLLMClient(cfg, logger)
	svc := service.New(llmClient, policyEngine, cfg, logger)
	verifyModel(ctx, svc, modelCheckTimeout, logger)
	server := httpserver.NewServer(svc, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "start http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down chat backend")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown http server")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("chat backend stopped")
	return nil
}

const modelCheckTimeout = 5 * time.Second

type modelChecker interface {
	CheckModel(ctx context.Context) error
}

// verifyModel warns when the LLM does not offer the configured model. The
// backend still starts: the model list may be restricted for the API key.
func verifyModel(ctx context.Context, checker modelChecker, timeout time.Duration, logger zerolog.Logger) bool {
	checkCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := checker.CheckModel(checkCtx); err != nil {
		logger.Warn().Err(err).Msg("model check failed")
		return false
	}
	logger.Info().Msg("model check passed")
	return true
}
