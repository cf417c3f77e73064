package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task is one step of the workflow. Run reports every sub-result through the
// printer and returns the first failure.
type Task interface {
	Name() string
	Run(ctx context.Context, collection CollectionAPI, out *Printer) error
}

// findAndPrint runs a find, times the round trip, and prints the decoded
// documents under a section marker.
func findAndPrint(ctx context.Context, collection CollectionAPI, out *Printer, timer metrics.Timer, label, heading string, filter interface{}, opts ...*options.FindOptions) error {
	out.Section(label, heading)

	start := time.Now()
	cursor, err := collection.Find(ctx, filter, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", heading, err)
	}
	docs, err := decodeAll(ctx, cursor)
	if err != nil {
		return fmt.Errorf("%s: %w", heading, err)
	}
	timer.UpdateSince(start)

	out.Docs(docs)
	return nil
}
