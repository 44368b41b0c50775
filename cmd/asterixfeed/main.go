package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"asterixdecode/internal/asterix"
	"asterixdecode/internal/asterix/cat001"
	"asterixdecode/internal/asterix/cat002"
	"asterixdecode/internal/config"
	"asterixdecode/internal/logging"
	"asterixdecode/internal/statsserver"
)

// Version information, set by build flags.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:   "asterixfeed",
		Short: "ASTERIX surveillance feed decoder",
		Long: `asterixfeed listens for ASTERIX data blocks over UDP, decodes
Category 001 and 002 records, and reports decoder health over HTTP.

Example usage:
  asterixfeed --config /etc/asterixfeed/asterixfeed.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return run(cfg)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("asterixfeed\n")
	fmt.Printf("Version: %s\n", Version)
	fmt.Printf("Build Time: %s\n", BuildTime)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

// run wires a dispatcher to its category handlers, starts the UDP
// listener and the stats HTTP server, and blocks until SIGINT/SIGTERM.
func run(cfg *config.Config) error {
	logger := logging.New(logging.Config{
		Dir:        cfg.Log.Dir,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Verbose:    cfg.Log.Verbose,
	})

	logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting asterixfeed")

	dispatcher := asterix.NewPacketDispatcher()
	sources := asterix.NewSourceStateStore()

	registered := make(map[int]bool)
	for _, cat := range cfg.Categories {
		registered[cat] = true
	}
	if registered[1] {
		dispatcher.RegisterCategory(1, cat001.New(dispatcher.Diagnostics(), sources))
	}
	if registered[2] {
		dispatcher.RegisterCategory(2, cat002.New(dispatcher.Diagnostics(), sources))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := listenUDP(ctx, cfg.ListenAddr, dispatcher, logger); err != nil {
			logger.WithError(err).Error("UDP listener stopped")
			cancel()
		}
	}()

	stats := statsserver.New(dispatcher.Diagnostics(), cfg.StatsAddr)
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.WithField("addr", cfg.StatsAddr).Info("stats server listening")
		if err := stats.Run(); err != nil {
			logger.WithError(err).Error("stats server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("received shutdown signal")
	case <-ctx.Done():
	}

	cancel()
	wg.Wait()
	return nil
}

// listenUDP reads datagrams from addr and hands each one to
// dispatcher.HandlePacket until ctx is cancelled.
func listenUDP(ctx context.Context, addr string, dispatcher *asterix.PacketDispatcher, logger *logrus.Logger) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", addr, err)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	defer conn.Close()

	if logger != nil {
		logger.WithField("addr", addr).Info("UDP listener bound")
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, 65536)
	for {
		n, _, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading datagram: %w", err)
		}

		packet := make([]byte, n)
		copy(packet, buf[:n])
		dispatcher.HandlePacket(packet, time.Now())
	}
}
