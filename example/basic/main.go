package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	aishubcollector "github.com/G0rocks/aishub-data-collector"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := aishubcollector.Run(ctx, "../../settings.yaml"); err != nil {
		log.Fatalf("collector exited: %v", err)
	}
}
