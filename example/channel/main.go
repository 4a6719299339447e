package main

import (
	"context"
	"fmt"
	"log"
	"time"

	aishubcollector "github.com/G0rocks/aishub-data-collector"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink, batches, closeBatches := aishubcollector.NewChannelSink("fanout", 32)
	defer closeBatches()

	go fanoutWorker("ingest", batches)

	if err := aishubcollector.Run(ctx, "../../settings.yaml", aishubcollector.WithMirror(sink)); err != nil {
		log.Fatalf("collector exited: %v", err)
	}
}

func fanoutWorker(name string, batches <-chan []*aishubcollector.VesselRecord) {
	for batch := range batches {
		fmt.Printf("[%s] forwarding %d records at %s\n", name, len(batch), time.Now().Format(time.RFC3339))
	}
}
