package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"thurianx/internal/api/web"
)

func newServeCommand() *cobra.Command {
	var (
		addr   string
		secure bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the capture-and-classify page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = env.cfg.HTTPAddr
			}

			srv, err := web.NewServer(env.container.SessionService, env.container.ClassificationService, env.container.Catalog, web.Options{
				MaxUploadBytes: env.cfg.MaxUploadBytes,
				StaticDir:      env.cfg.StaticDir,
				SecureCookies:  secure,
			})
			if err != nil {
				return err
			}

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			env.sweeper.Start()
			defer env.sweeper.Stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("http server listening")
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return err
			}
			env.container.ClassificationService.Wait()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	cmd.Flags().BoolVar(&secure, "secure-cookies", false, "mark the session cookie Secure (behind TLS)")
	return cmd
}
