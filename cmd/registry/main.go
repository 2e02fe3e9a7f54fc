package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Registry service entrypoint: device CRUD API plus the identity and
// profile event consumers.
func main() {
	log.Println("wattline registry service starting")
	app, err := bootstrap.BuildRegistry()
	if err != nil {
		log.Fatalf("bootstrap registry service failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("registry service shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline registry service stopped with error: %v", err)
	}
}
