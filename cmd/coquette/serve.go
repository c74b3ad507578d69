package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/coquette/internal/platform/tui"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeMetrics string
	flagRate         float64
	flagBurst        int
	flagMaxPerIP     int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the coquette SSH server",
	Long: `Start an SSH server that allows users to connect and play games.

Each SSH connection gets their own session with a game picker menu.
Scores are stored per-server (all users share the same leaderboard).
Each client IP may open --burst sessions back to back, then --rate new
sessions per second, and hold at most --max-per-ip at once.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.coquette/host_key

Examples:
  coquette serve                           # Listen on :23234 with auto-generated key
  coquette serve --ssh :2222               # Listen on port 2222
  coquette serve --host-key ./my_host_key  # Use specific host key
  coquette serve --metrics-addr :9090      # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMetrics, "metrics-addr", "", "Serve Prometheus metrics on this address")
	serveCmd.Flags().Float64Var(&flagRate, "rate", def.RateLimit.SessionsPerSecond, "New sessions per second allowed per IP")
	serveCmd.Flags().IntVar(&flagBurst, "burst", def.RateLimit.Burst, "Sessions an IP may open back to back")
	serveCmd.Flags().IntVar(&flagMaxPerIP, "max-per-ip", def.RateLimit.MaxPerIP, "Concurrent sessions per IP (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ec, err := loadEngineConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	m := startMetrics(ctx, flagServeMetrics, logger)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.RateLimit.SessionsPerSecond = flagRate
	cfg.RateLimit.Burst = flagBurst
	cfg.RateLimit.MaxPerIP = flagMaxPerIP
	cfg.Engine = ec

	server, err := tui.NewSSHServer(cfg, store, m, logger.WithPrefix("coquette-ssh"))
	if err != nil {
		return err
	}

	fmt.Printf("Starting coquette SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
