package cli

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/vytor/chessassist/internal/analysis"
	"github.com/vytor/chessassist/internal/api"
	"github.com/vytor/chessassist/internal/openings"
	"github.com/vytor/chessassist/internal/services"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var (
		addr        string
		maxAnalyses int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the same features as a JSON HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireValid(); err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Addr
			}

			pool := analysis.NewEnginePool(maxAnalyses)
			defer pool.Close()

			analysisSvc, err := a.analysisService(services.PooledRunner(pool))
			if err != nil {
				// The other endpoints work without an engine.
				a.log.Warn("engine unavailable, /api/analyze will fail: %v", err)
				analysisSvc = services.NewAnalysisService(a.chessClient(), services.AnalysisConfig{}, unavailableEngine(err))
			}

			srv := &api.Server{
				Analysis:       analysisSvc,
				Players:        services.NewPlayerService(a.chessClient()),
				Openings:       services.NewOpeningService(openings.Default(), a.chessClient()),
				AnalyzeTimeout: 10 * time.Minute,
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), a, ln, srv.Routes())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default ADDR)")
	cmd.Flags().IntVar(&maxAnalyses, "max-analyses", 2, "engine processes allowed to run at once")
	return cmd
}

// serve runs the HTTP server on ln until ctx is cancelled, then shuts it
// down gracefully.
func serve(ctx context.Context, a *app, ln net.Listener, handler http.Handler) error {
	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("HTTP server listening on %s", ln.Addr())
		if err := httpServer.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func unavailableEngine(cause error) services.EngineRunner {
	return func(context.Context, services.AnalysisConfig, func(analysis.Evaluator) error) error {
		return cause
	}
}
