// Package main - Entry point for the premium estimation server
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"premium-estimator/api"
	"premium-estimator/core/premium"
	"premium-estimator/core/pricing"
	"premium-estimator/internal/config"
	"premium-estimator/internal/logging"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "premium-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "configs/premium.yaml", "Config file")
	addr := flag.String("addr", "", "Server address (overrides server.address)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()

	loc, err := cfg.Rates.Location()
	if err != nil {
		return err
	}

	table, err := loadRates(cfg.Rates.Path)
	if err != nil {
		return err
	}
	store := pricing.NewStore(table)
	logger.Info("rate table loaded",
		zap.String("version", table.Label()),
		zap.String("hash", table.Hash().Short()),
		zap.String("path", cfg.Rates.Path),
	)

	calc := premium.New(store,
		premium.WithClock(premium.SystemClock(loc)),
		premium.WithLogger(logger.Named("premium")),
	)
	apiServer := api.NewServer(calc, version,
		api.WithLogger(logger.Named("api")),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		api.WithLocation(loc),
	)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      apiServer,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go watchReload(ctx, store, cfg.Rates.Path, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("premium estimation server started",
			zap.String("version", version),
			zap.String("address", cfg.Server.Address),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// loadRates reads the HCL rate table at path, or the built-in tables when path is empty
func loadRates(path string) (*pricing.RateTable, error) {
	if path == "" {
		return pricing.DefaultRateTable(), nil
	}
	return pricing.LoadFile(path)
}

// watchReload republishes the rate table on SIGHUP. A table that fails to
// load or validate is logged and the current snapshot stays in service.
func watchReload(ctx context.Context, store *pricing.Store, path string, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			table, err := loadRates(path)
			if err != nil {
				logger.Error("rate table reload failed", zap.String("path", path), zap.Error(err))
				continue
			}
			previous, changed, err := store.Publish(table)
			if err != nil {
				logger.Error("rate table publish failed", zap.Error(err))
				continue
			}
			if !changed {
				logger.Info("rate table unchanged", zap.String("version", table.Label()))
				continue
			}
			logger.Info("rate table published",
				zap.String("previous", previous.Label()),
				zap.String("version", table.Label()),
				zap.String("hash", table.Hash().Short()),
			)
		}
	}
}
