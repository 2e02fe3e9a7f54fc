package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Ingestion router entrypoint: worker-only process spreading readings
// across monitoring replicas.
func main() {
	log.Println("wattline ingestion router starting")
	app, err := bootstrap.BuildRouter()
	if err != nil {
		log.Fatalf("bootstrap ingestion router failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("ingestion router shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline ingestion router stopped with error: %v", err)
	}
}
