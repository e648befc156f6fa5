package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wallsketch/internal/config"
	"wallsketch/internal/logging"
	"wallsketch/internal/server"
	"wallsketch/internal/store"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logging.Set(logging.New(cfg.Log.Level, os.Stderr))

	db, err := store.OpenSQLite(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := store.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	srv := server.New(repo, cfg.EditorSettings())
	app := server.NewApp(srv, server.AppConfig{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		AccessLog:    true,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Starting plan server on %s (db: %s)", addr, cfg.Server.DBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
