package main

import (
	"context"
	"fmt"
	"log"

	aishubcollector "github.com/G0rocks/aishub-data-collector"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mirror := aishubcollector.NewCallbackSink("stdout", func(batch []*aishubcollector.VesselRecord) error {
		for _, rec := range batch {
			fmt.Printf("tstamp=%d name=%s imo=%d mmsi=%d sog=%d cog=%.1f\n",
				rec.Timestamp,
				rec.Name,
				rec.IMO,
				rec.MMSI,
				rec.SpeedOverGround,
				rec.CourseOverGround,
			)
		}
		return nil
	})

	if err := aishubcollector.Run(ctx, "../../settings.yaml", aishubcollector.WithMirror(mirror)); err != nil {
		log.Fatalf("collector exited: %v", err)
	}
}
