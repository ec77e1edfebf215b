package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/isha-gupta80/loomaproject2222/internal/config"
	"github.com/isha-gupta80/loomaproject2222/internal/directory"
	"github.com/isha-gupta80/loomaproject2222/internal/httpserver"
	"github.com/isha-gupta80/loomaproject2222/internal/identity"
	"github.com/isha-gupta80/loomaproject2222/internal/importer"
	"github.com/isha-gupta80/loomaproject2222/internal/jobs"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("store connection failed: %v", err)
	}
	if st.IsLive() {
		log.Printf("store: connected to %s", cfg.MongoDatabase)
	} else {
		log.Printf("store: MONGODB_URI not set or invalid, running on the in-memory demo dataset")
	}

	id := identity.New(st, cfg.SessionTTL)
	dir := directory.New(st)
	server := httpserver.NewServer(cfg, st, id, dir, importer.New(dir))

	jobs.StartSessionPurge(ctx, cfg.SessionPurgeInterval, st.Sessions)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("looma directory listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Printf("store close error: %v", err)
	}
}
