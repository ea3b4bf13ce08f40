// bhcq answers every DHCPDISCOVER and DHCPREQUEST on one interface with the
// same configured lease.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KOBA789/bhcq/internal/config"
	"github.com/KOBA789/bhcq/internal/dhcp"
	"github.com/KOBA789/bhcq/internal/logging"
	"github.com/KOBA789/bhcq/internal/metrics"
	"github.com/KOBA789/bhcq/internal/transport"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (built-in defaults when empty)")
	iface := flag.String("interface", "", "interface to serve on, overrides server.interface")
	logLevel := flag.String("log-level", "", "log level, overrides server.log_level")
	printConfig := flag.Bool("print-config", false, "print the effective configuration and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *iface, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	if *printConfig {
		if err := config.Encode(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Setup logging
	logger := logging.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat, os.Stdout)
	logger.Info("bhcq starting",
		"config", *configPath,
		"interface", cfg.Server.Interface,
		"bind_address", cfg.Server.BindAddress,
		"server_id", cfg.Server.ServerID,
		"offer", cfg.Offer.Address)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("shutdown complete")
}

func loadConfig(path, iface, logLevel string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if iface != "" {
		cfg.Server.Interface = iface
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	udp, err := transport.Listen(ctx, transport.Config{
		Interface:   cfg.Server.Interface,
		BindAddress: cfg.Server.BindAddress,
	})
	if err != nil {
		return err
	}
	defer udp.Close()
	logger.Info("listening", "address", udp.LocalAddr().String(), "interface", cfg.Server.Interface)

	if cfg.Server.MetricsListen != "" {
		ms := metrics.NewServer(cfg.Server.MetricsListen, logger)
		ln, err := ms.Listen()
		if err != nil {
			return err
		}
		go func() {
			if err := ms.Serve(ln); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			ms.Stop(shutdownCtx)
		}()
	}

	metrics.ServerStartTime.SetToCurrentTime()

	handler := dhcp.NewHandler(cfg.LeaseParams(), logger)
	srv := dhcp.NewServer(udp, handler, logger)

	err = srv.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
