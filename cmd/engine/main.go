package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"jobdigest-engine/internal/config"
	"jobdigest-engine/internal/events"
	"jobdigest-engine/internal/httpapi"
	"jobdigest-engine/internal/poll"
	"jobdigest-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided, else local folder.
	dataDir := os.Getenv("JOBDIGEST_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		return config.Load(userCfgPath)
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobdigest.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	if n, err := store.CleanupOldRecords(db.Pool); err != nil {
		log.Printf("[store] cleanup: %v", err)
	} else if n > 0 {
		log.Printf("[store] cleanup deleted=%d", n)
	}

	hub := events.NewHub()

	var pollStatus atomic.Value
	pollStatus.Store(poll.Status{})

	poll.StartPoller(db.Pool, &cfgVal, &pollStatus, hub)

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		CfgVal:      &cfgVal,
		PollStatus:  &pollStatus,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		RunPollOnce: poll.PollOnce,
		RefreshFeed: poll.RefreshFeed,
	})

	port := cfg.App.Port
	if port == 0 {
		port = 38517
	}
	addr := net.JoinHostPort("127.0.0.1", itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	if err := writeTokenFile(dataDir, token); err != nil {
		log.Printf("[main] shutdown token file: %v", err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
