package main

import (
	"flag"
	"log"
	"threadgems/internal/config"
	"threadgems/internal/server"
	"threadgems/internal/version"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the YAML config file")
	flag.StringVar(&configPath, "c", "", "path to the YAML config file (shorthand)")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		log.Printf("threadgems %s", version.GetFullVersion())
		return
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
