package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Device simulator entrypoint: worker-only process emitting synthetic
// consumption readings.
func main() {
	log.Println("wattline device simulator starting")
	app, err := bootstrap.BuildSimulator()
	if err != nil {
		log.Fatalf("bootstrap device simulator failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("device simulator shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline device simulator stopped with error: %v", err)
	}
}
