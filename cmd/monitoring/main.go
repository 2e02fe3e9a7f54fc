package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Monitoring service entrypoint: one replica of the threshold alerting
// pipeline plus the consumptions read API.
func main() {
	log.Println("wattline monitoring service starting")
	app, err := bootstrap.BuildMonitoring()
	if err != nil {
		log.Fatalf("bootstrap monitoring service failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("monitoring service shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline monitoring service stopped with error: %v", err)
	}
}
