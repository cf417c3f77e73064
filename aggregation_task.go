package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rcrowley/go-metrics"
	"go.mongodb.org/mongo-driver/bson"
)

// AggregationTask runs the three pipelines: average price per genre, the most
// prolific author, and book counts per publication decade.
type AggregationTask struct {
	timers metrics.Registry
}

func (t AggregationTask) Name() string { return "Task 4: Aggregation Pipelines" }

func averagePriceByGenrePipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":          "$genre",
			"averagePrice": bson.M{"$avg": "$price"},
			"bookCount":    bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"averagePrice": -1}},
	}
}

// topAuthorPipeline breaks count ties on the author name so the winner is
// deterministic.
func topAuthorPipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":       "$author",
			"bookCount": bson.M{"$sum": 1},
		}},
		{"$sort": bson.D{{Key: "bookCount", Value: -1}, {Key: "_id", Value: 1}}},
		{"$limit": 1},
	}
}

func booksByDecadePipeline() []bson.M {
	return []bson.M{
		{"$group": bson.M{
			"_id":   bson.M{"$subtract": bson.A{"$published_year", bson.M{"$mod": bson.A{"$published_year", 10}}}},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
		{"$project": bson.M{"_id": 0, "decade": "$_id", "count": 1}},
	}
}

func (t AggregationTask) aggregateAndPrint(ctx context.Context, collection CollectionAPI, out *Printer, timerName, heading string, pipeline []bson.M) error {
	out.Section("Task 4", heading)

	start := time.Now()
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("%s: %w", heading, err)
	}
	docs, err := decodeAll(ctx, cursor)
	if err != nil {
		return fmt.Errorf("%s: %w", heading, err)
	}
	metrics.GetOrRegisterTimer(timerName, t.timers).UpdateSince(start)

	out.Docs(docs)
	return nil
}

func (t AggregationTask) Run(ctx context.Context, collection CollectionAPI, out *Printer) error {
	err := t.aggregateAndPrint(ctx, collection, out,
		"aggregation.avg_price_by_genre", "Average price and book count per genre",
		averagePriceByGenrePipeline())
	if err != nil {
		return err
	}

	err = t.aggregateAndPrint(ctx, collection, out,
		"aggregation.top_author", "Author with the most books",
		topAuthorPipeline())
	if err != nil {
		return err
	}

	return t.aggregateAndPrint(ctx, collection, out,
		"aggregation.books_by_decade", "Books per publication decade",
		booksByDecadePipeline())
}
