package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/coquette/internal/config"
	"github.com/vovakirdan/coquette/internal/metrics"
	"github.com/vovakirdan/coquette/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.coquette/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// RateLimit bounds new sessions per client IP.
	RateLimit RateLimitConfig

	// Engine configures every game started over SSH.
	Engine config.EngineConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		RateLimit:   DefaultRateLimitConfig,
		Engine:      config.DefaultEngineConfig(),
	}
}

// sessionKey stores the session model in the SSH context.
type sessionKey struct{}

// SSHServer wraps a Wish SSH server for coquette.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	metrics *metrics.Metrics
	limiter *IPRateLimiter
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server. store and m may be nil; logger
// defaults to a timestamped stderr logger.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, m *metrics.Metrics, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "coquette-ssh",
		})
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		metrics: m,
		limiter: NewIPRateLimiter(cfg.RateLimit),
		logger:  logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.DataPath("host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		srv.limiter.Stop()
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	// Middlewares run last to first: the limiter sees a connection before
	// anything else, and the finisher runs after the program has exited.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.finishMiddleware,
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.rateLimitMiddleware,
		),
	)
	if err != nil {
		srv.limiter.Stop()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		s.rejected("no_pty")
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		ID:       storage.NewSessionID(),
		User:     sess.User(),
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
		Engine:   s.config.Engine,
		Store:    s.store,
		Metrics:  s.metrics,
		Logger:   s.logger,
		Renderer: bubbletea.MakeRenderer(sess),
	})
	sess.Context().SetValue(sessionKey{}, model)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// finishMiddleware records the game a client left running when it disconnected.
func (s *SSHServer) finishMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if model, ok := sess.Context().Value(sessionKey{}).(SessionModel); ok {
			model.Close()
		}
		next(sess)
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// rateLimitMiddleware turns away clients that open sessions too quickly or
// hold too many at once.
func (s *SSHServer) rateLimitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		ip := remoteIP(sess.RemoteAddr())
		if !s.limiter.Allow(ip) {
			s.logger.Warn("session rate limited", "remote", ip)
			s.rejected("rate_limit")
			wish.Fatalln(sess, "Too many sessions, try again later.")
			return
		}
		if !s.limiter.Acquire(ip) {
			s.logger.Warn("too many sessions", "remote", ip)
			s.rejected("max_sessions")
			wish.Fatalln(sess, "Too many open sessions from your address.")
			return
		}
		defer s.limiter.Release(ip)
		next(sess)
	}
}

func (s *SSHServer) rejected(reason string) {
	if s.metrics != nil {
		s.metrics.RecordConnectionRejected(reason)
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return fmt.Errorf("cannot listen on %s: %w", s.config.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts sessions on ln until ctx is done, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting SSH server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.limiter.Stop()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.limiter.Stop()
	allowed, rejected := s.limiter.Stats()
	s.logger.Info("server stopped", "allowed", allowed, "rejected", rejected)

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
