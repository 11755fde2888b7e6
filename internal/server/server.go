// Package server boots the HTTP process: config, Mongo, Redis, storage,
// the optional Mongo log sink, then the router, with graceful shutdown
// on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawhaven/pawhaven/app/routes"
	"github.com/pawhaven/pawhaven/config"
	"github.com/pawhaven/pawhaven/internal/store"
	"github.com/pawhaven/pawhaven/pkg/cache"
	"github.com/pawhaven/pawhaven/pkg/logger"
	"github.com/pawhaven/pawhaven/pkg/payment"
	"github.com/pawhaven/pawhaven/pkg/storage"
)

const shutdownTimeout = 10 * time.Second

// Start runs the server until the process is signalled.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongo, err := store.ConnectMongo(ctx, config.MongoURI(), config.MongoDB())
	cancel()
	if err != nil {
		return err
	}
	defer mongo.Close(context.Background())

	if config.Get("LOG_TO_MONGO", "") == "true" {
		sink := logger.NewMongoHandler(mongo.Database(), "logs")
		defer sink.Close()
		logger.SetHandler(logger.NewMultiHandler(logger.L.Handler(), sink))
	}

	cache.Connect()
	storage.Connect()

	gw := payment.NewStripe(config.StripeSecretKey())

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           routes.New(mongo, gw),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
