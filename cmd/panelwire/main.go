// Command panelwire serves panels over HTTP.
//
//	panelwire -config ./config.json
//
// The config file is created with defaults when missing and reloaded on
// change; the listen address and store driver are read once at start.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/katalvlaran/panelwire/api"
	"github.com/katalvlaran/panelwire/config"
	"github.com/katalvlaran/panelwire/store"
)

func main() {
	path := flag.String("config", "./config.json", "path to the JSON config file")
	flag.Parse()

	logger := log.New(os.Stderr, "panelwire ", log.LstdFlags)
	cfg, err := config.Load(*path)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer closeStore()
	logger.Printf("using %s store", cfg.Store.Driver)

	srv := api.New(st, api.WithLogger(logger), api.WithConfig(cfg))
	go func() {
		err := config.Watch(ctx, *path, logger, func(c config.Config) {
			logger.Printf("config reloaded")
			srv.SetConfig(c)
		})
		if err != nil {
			logger.Printf("config watch stopped: %v", err)
		}
	}()

	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Router(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		srv.Hub().Close()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdown)
	}()

	logger.Printf("listening on %s", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("serve: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (store.Lister, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverSQLite:
		db, err := store.OpenSQLite(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	case config.DriverPostgres:
		db, err := store.OpenPostgres(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { _ = db.Close() }, nil
	}
	return store.NewMemory(), func() {}, nil
}
