package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"oneshot/internal/app"
	"oneshot/pkg/banner"
	"oneshot/pkg/config"
	"oneshot/pkg/logger"
	"oneshot/pkg/server"
	"oneshot/pkg/shutdown"
	"oneshot/pkg/store"
)

// build metadata - set via ldflags during build/release
var version = "dev"

func main() {
	_ = godotenv.Load(".env")
	flags := config.ParseCommandFlags()

	cfgPath := config.ResolveConfigPath(flags.Config, flags.Set["config"])
	cfg, source, err := config.LoadEffective(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	config.ApplyFlags(cfg, flags)

	logger.InitWithLevel(cfg.Logging.Level)
	if cfg.Logging.Enabled {
		logger.EnableAccess()
	}

	opts, err := cfg.Options()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		dbPath = flags.DB
	}
	if err := store.Open(dbPath); err != nil {
		log.Fatalf("failed to open pebble at %s: %v", dbPath, err)
	}

	srv := server.New(app.Handler(), opts)
	banner.Print(cfg.Addr(), dbPath, source, version, opts)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()

	select {
	case err := <-serveErr:
		if err != nil {
			_ = store.Close()
			log.Fatalf("server failed: %v", err)
		}
	case sig := <-waitSignal():
		logger.Info("shutting_down", "signal", sig.String())
	}

	_ = shutdown.Run(
		shutdown.Step{Name: "listener", Fn: srv.Close},
		shutdown.Step{Name: "store", Fn: store.Close},
	)
	logger.Sync()
}

func waitSignal() chan os.Signal {
	ch := make(chan os.Signal, 1)
	go func() { ch <- shutdown.Wait() }()
	return ch
}
