package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sourcing-cli/internal/api"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, cleanup, err := newAPIServer(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      2 * time.Minute,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
		}()

		zap.L().Info("starting server",
			zap.Int("port", cfg.Server.Port),
			zap.String("store", cfg.Store.Driver),
			zap.Bool("polish", cfg.Anthropic.Key != ""),
		)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newAPIServer wires the API from config. cleanup closes the history store.
func newAPIServer(ctx context.Context) (*api.Server, func(), error) {
	scorer, err := initScorer()
	if err != nil {
		return nil, nil, err
	}
	opts := []api.Option{
		api.WithScorer(scorer),
		api.WithRateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst),
		api.WithCORSOrigins(cfg.Server.CORSOrigins),
	}
	if p := initPolisher(); p != nil {
		opts = append(opts, api.WithPolisher(p))
	}

	cleanup := func() {}
	st, err := initStore(ctx)
	if err != nil {
		return nil, nil, err
	}
	if st != nil {
		opts = append(opts, api.WithStore(st))
		cleanup = func() { st.Close() } //nolint:errcheck
	}
	return api.New(opts...), cleanup, nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
