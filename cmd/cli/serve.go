package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arnavsurve/stepshot/pkg/artifact"
	"github.com/arnavsurve/stepshot/pkg/browser"
	"github.com/arnavsurve/stepshot/pkg/orchestrator"
	"github.com/arnavsurve/stepshot/pkg/server"
)

type ServeCmd struct {
	BrowserFlags

	Addr         string        `help:"Address to listen on." default:":3000" env:"STEPSHOT_ADDR"`
	DisposeAfter time.Duration `help:"How long screenshots stay available after a run. Zero keeps them." default:"5s" env:"STEPSHOT_DISPOSE_AFTER"`
	Warm         bool          `help:"Launch the browser at startup instead of on the first run."`
}

func (s *ServeCmd) Run(g *Globals) error {
	logRouter, logger, err := setupLogging(g, g.LogFile)
	if err != nil {
		return err
	}
	defer closeLogging(logger, logRouter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager, err := artifact.NewManager(s.PublicDir, logger)
	if err != nil {
		return err
	}

	// Pending screenshots are deleted on shutdown.
	disposer := artifact.NewDisposer(s.DisposeAfter, logger)
	defer disposer.Close()

	provider := browser.NewProvider(s.options(), logger)
	defer func() {
		if err := provider.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close browser")
		}
	}()
	if s.Warm {
		if err := provider.Warm(); err != nil {
			logger.Warn().Err(err).Msg("Browser warm-up failed, will retry on first run")
		}
	}

	orch := orchestrator.New(provider, manager, disposer, logger)
	srv := server.New(server.Config{Addr: s.Addr, PublicDir: s.PublicDir}, orch, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error().Err(err).Msg("HTTP server stopped")
		return fmt.Errorf("serving on %s: %w", s.Addr, err)
	}
	return nil
}
