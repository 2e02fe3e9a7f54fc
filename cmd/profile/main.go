package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Profile service entrypoint: HTTP API; runs the edit-profile and
// delete-account sagas.
func main() {
	log.Println("wattline profile service starting")
	app, err := bootstrap.BuildProfile()
	if err != nil {
		log.Fatalf("bootstrap profile service failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("profile service shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline profile service stopped with error: %v", err)
	}
}
