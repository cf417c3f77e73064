package main

import (
	"log"
	"sort"
	"time"

	"github.com/rcrowley/go-metrics"
)

// printTimings logs one summary line per recorded operation timer.
func printTimings(registry metrics.Registry) {
	type timing struct {
		name  string
		timer metrics.Timer
	}

	var timings []timing
	registry.Each(func(name string, metric interface{}) {
		if timer, ok := metric.(metrics.Timer); ok {
			timings = append(timings, timing{name, timer})
		}
	})
	sort.Slice(timings, func(i, j int) bool { return timings[i].name < timings[j].name })

	for _, t := range timings {
		log.Printf("Operation: %s, Count: %d, Mean: %.2f ms, Max: %d ms",
			t.name, t.timer.Count(),
			t.timer.Mean()/float64(time.Millisecond),
			t.timer.Max()/int64(time.Millisecond))
	}
}
