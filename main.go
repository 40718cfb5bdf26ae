package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/SiikHub/SiikHubWaitList/cliparse"
	"github.com/SiikHub/SiikHubWaitList/db"
	"github.com/SiikHub/SiikHubWaitList/router"
	"github.com/SiikHub/SiikHubWaitList/waitlist"
)

func main() {
	var err error

	// .env is optional; real env vars win
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("Error parsing log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Pick the store
	var store waitlist.Store
	switch cfg.StoreType {
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		sqlStore, err := db.Open(cfg.StoreType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database setup failed", "store", cfg.StoreType, "error", err)
			os.Exit(1)
		}
		defer sqlStore.Close()
		store = sqlStore
		slog.Info("Database schema ready", "store", cfg.StoreType)
	default:
		store = waitlist.NewMemoryStore()
		slog.Info("Using in-memory store")
	}

	reg := waitlist.NewRegistry(store,
		waitlist.WithDefaultSource(cfg.DefaultSource),
		waitlist.WithProductName(cfg.ProductName),
	)

	// Create router
	handler := router.NewRouter(reg, cfg)

	// Create server
	server := http.Server{
		Handler: handler,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "version", cfg.Version)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
