package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	tour "github.com/aretw0/terminaltour"
	httpAdapter "github.com/aretw0/terminaltour/internal/adapters/http"
	"github.com/aretw0/terminaltour/internal/logging"
	"github.com/aretw0/terminaltour/pkg/ports"
	"github.com/aretw0/terminaltour/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// ServeOptions control `tour serve`.
type ServeOptions struct {
	// Addr overrides server.addr from the configuration.
	Addr string

	// Ready, when set, receives the listening address once the server is up.
	Ready chan<- string
}

// RunServe serves the tour over HTTP until ctx is cancelled.
func RunServe(ctx context.Context, opts Options, s ServeOptions) error {
	logger := logging.NewJSON(logging.Level(opts.Debug))
	t, cfg, err := load(opts, logger)
	if err != nil {
		return err
	}

	srvOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(tour.Version),
		httpAdapter.WithMaxInput(cfg.Shell.MaxInput),
		httpAdapter.WithSessionOptions(
			session.WithFrameInterval(cfg.Server.FrameInterval.Std()),
			session.WithBuffer(cfg.Server.SSEBuffer),
			session.WithPlaybackOptions(cfg.PlaybackOptions()...),
		),
	}
	if opts.ScriptsDir != "" {
		if w, ok := t.Scripts.(ports.Watchable); ok {
			srvOpts = append(srvOpts, httpAdapter.WithWatcher(w))
		}
	}

	server, err := httpAdapter.NewServer(t.Page, t.Scripts, srvOpts...)
	if err != nil {
		return err
	}
	defer server.Close()

	addr := cfg.Server.Addr
	if s.Addr != "" {
		addr = s.Addr
	}
	ln, err := listen(addr)
	if err != nil {
		return err
	}

	// Streams hang off ctx so that they end when shutdown starts.
	srv := &http.Server{
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Serve(ln)
	}()

	out := opts.out()
	printSystemMessage(out, "Serving %s on http://%s", t.Name, ln.Addr())
	logger.Info("server started", "addr", ln.Addr().String(), "version", tour.Version)
	if s.Ready != nil {
		s.Ready <- ln.Addr().String()
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutting down")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		printSystemMessage(out, "Server stopped gracefully")
		return nil
	}
}

func listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
