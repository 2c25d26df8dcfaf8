package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"snakepit/server"
)

// Snakepit entry point: authoritative simulation server for the snake
// arena. Rooms are created on demand as players join; this process only
// hosts the simulation and its websocket edge.
func main() {
	cfg := server.LoadConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "server listen address, e.g. :8080")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file path")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")
	flag.Parse()

	if err := server.InitLogger(cfg.LogFile, cfg.Debug); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	registry := server.NewRegistry(cfg.TickHz)
	srv := &http.Server{Addr: cfg.Addr, Handler: server.NewServer(registry).Routes()}

	go func() {
		server.Log.Infof("snakepit listening on %s (tick=%dHz)", cfg.Addr, cfg.TickHz)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	server.Log.Info("shutting down...")
	_ = srv.Close()
}
