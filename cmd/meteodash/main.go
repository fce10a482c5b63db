package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os/signal"
	"syscall"

	_ "modernc.org/sqlite"

	"github.com/mcrocce/meteodash/internal/api"
	"github.com/mcrocce/meteodash/internal/config"
	"github.com/mcrocce/meteodash/internal/openmeteo"
	"github.com/mcrocce/meteodash/internal/refresh"
	"github.com/mcrocce/meteodash/internal/resolver"
	"github.com/mcrocce/meteodash/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbPath := flag.String("db", cfg.DBPath, "path to SQLite database")
	port := flag.String("port", cfg.Port, "HTTP server port")
	noRefresh := flag.Bool("no-refresh", !cfg.RefreshEnabled, "disable background refresh (server only, for local dev)")
	once := flag.Bool("once", false, "resolve the preferred location once and exit")
	flag.Parse()

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	geocoder := openmeteo.NewGeocodeClient()
	rs := resolver.New(openmeteo.NewForecastClient(), geocoder, st)
	server := api.NewServer(rs, geocoder, st, *port)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		log.Println("running single resolve")
		res, err := rs.Resolve(ctx, resolver.Request{})
		if err != nil {
			log.Fatalf("resolve: %v", err)
		}
		log.Printf("resolved %s (cached=%v)", res.Snapshot.DisplayName, res.FromCache)
		return
	}

	if !*noRefresh {
		scheduler := refresh.New(rs, cfg.RefreshInterval)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("refresh scheduler: %v", err)
		}
		defer scheduler.Stop()
	} else {
		log.Println("background refresh disabled (--no-refresh)")
	}

	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
