package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"wattline/internal/app/bootstrap"
)

// Notification service entrypoint: alert consumer plus the websocket
// subscription endpoint.
func main() {
	log.Println("wattline notification service starting")
	app, err := bootstrap.BuildNotification()
	if err != nil {
		log.Fatalf("bootstrap notification service failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("notification service shutdown close failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("wattline notification service stopped with error: %v", err)
	}
}
