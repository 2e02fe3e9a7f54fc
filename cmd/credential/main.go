package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Credential service entrypoint: HTTP API plus the profile-crud consumer.
func main() {
	log.Println("wattline credential service starting")
	app, err := bootstrap.BuildCredential()
	if err != nil {
		log.Fatalf("bootstrap credential service failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("credential service shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline credential service stopped with error: %v", err)
	}
}
