package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gonuts/flag"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/teatak/postag/config"
)

func main() {
	configPath := flag.String("c", "", "YAML configuration file")
	addr := flag.String("addr", "", "Listen address (overrides the config)")
	flag.Parse()

	log.SetPrefix("[SRV] ")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	srv := newServer(cfg, prometheus.DefaultRegisterer)

	// 1. Initial Load
	if err := srv.reload(); err != nil {
		log.Printf("Initial load failed: %v", err)
		os.Exit(1)
	}

	log.Printf("Server started on %s", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, srv.routes()))
}
