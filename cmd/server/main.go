package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/config"
	"github.com/Undanomi/OSINT-GAME-sub000/internal/infrastructure/server"
)

func main() {
	cfg := config.LoadOrDefault()

	port := flag.String("port", cfg.Server.Port, "Server port")
	seedPath := flag.String("seed", cfg.Seed.Path, "Seed file, directory, glob or URL used when the cache is empty")
	storePath := flag.String("store", cfg.Store.Path, "Cache store path")
	backend := flag.String("backend", cfg.Store.Backend, "Cache store backend (badger or sqlite)")
	inMemory := flag.Bool("memory", cfg.Store.InMemory, "Keep the cache store in memory")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development logging")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Seed.Path = *seedPath
	cfg.Store.Path = *storePath
	cfg.Store.Backend = *backend
	cfg.Store.InMemory = *inMemory
	cfg.Logging.Development = *dev

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case <-sigChan:
		log.Println("Shutting down gracefully...")
		if err := srv.Close(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}
