package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/kord-legal/kord/pkg/cli/config"
	controller "github.com/kord-legal/kord/pkg/controller/http"
	"github.com/kord-legal/kord/pkg/usecase"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		databaseCfg config.Database
		llmCfg      config.LLM
		reportCfg   config.Report
	)

	flags := joinFlags(
		serverCfg.Flags(),
		databaseCfg.Flags(),
		llmCfg.Flags(),
		reportCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting kord server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("database", databaseCfg),
				slog.Any("llm", llmCfg),
				slog.Any("report", reportCfg),
			)

			repo, err := databaseCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			dataset, err := reportCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load report dataset")
			}

			relay := llmCfg.Configure()
			if !relay.IsConfigured() {
				logger.Warn("LLM API key is not set. The verify and investigate routes will answer 401")
			}

			investigationUC := usecase.NewInvestigation(repo, dataset)
			briefUC := usecase.NewBrief()

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				repo,
				investigationUC,
				briefUC,
				relay,
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
