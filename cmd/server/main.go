package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/omnisketch/omnisketch/backend-go/internal/config"
	"github.com/omnisketch/omnisketch/backend-go/internal/export"
	mw "github.com/omnisketch/omnisketch/backend-go/internal/middleware"
	"github.com/omnisketch/omnisketch/backend-go/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	hub := session.NewHub()
	go hub.Run()

	tokens := session.NewTokenService(cfg.SessionSecret, cfg.SessionTokenTTL)
	sessionHandler := session.NewHandler(session.NewRegistry(), tokens, hub, cfg.OriginPatterns())
	exportHandler := export.NewHandler(cfg.ExportBackground)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.OriginPatterns()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Export endpoint
	r.HandleFunc("/export/{format}", exportHandler.Export).Methods("POST", "OPTIONS")

	// Sessions
	r.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	r.Handle("/sessions/{code}", tokens.Middleware(http.HandlerFunc(sessionHandler.Get))).Methods("GET", "OPTIONS")
	r.HandleFunc("/sessions/{code}/join", sessionHandler.Join).Methods("POST", "OPTIONS")

	// WebSocket endpoint
	r.HandleFunc("/ws/session/{code}", sessionHandler.ServeWS)

	if cfg.MDNSEnabled {
		r.HandleFunc("/peers", func(w http.ResponseWriter, r *http.Request) {
			peers, err := session.Browse(2 * time.Second)
			if err != nil {
				slog.Error("browse peers", "error", err)
				http.Error(w, "browse failed", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"peers": peers})
		}).Methods("GET")
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if cfg.MDNSEnabled {
		mdnsServer, err := session.Advertise(cfg.MDNSInstance, cfg.Port)
		if err != nil {
			slog.Warn("mdns advertise failed", "error", err)
		} else {
			defer mdnsServer.Shutdown()
			slog.Info("mdns advertising", "service", session.ServiceType, "instance", cfg.MDNSInstance)
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Close websocket rooms before draining HTTP.
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
