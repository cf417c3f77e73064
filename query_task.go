package main

import (
	"context"
	"fmt"

	"github.com/rcrowley/go-metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pageSize = 5

// QueryTask covers compound filters, projection, sorting and pagination.
type QueryTask struct {
	timers metrics.Registry
}

func (t QueryTask) Name() string { return "Task 3: Advanced Queries" }

// pageOptions sorts by published_year ascending before applying skip/limit so
// page boundaries stay deterministic.
func pageOptions(page, size int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "published_year", Value: 1}}).
		SetSkip(int64((page - 1) * size)).
		SetLimit(int64(size))
}

func (t QueryTask) Run(ctx context.Context, collection CollectionAPI, out *Printer) error {
	const label = "Task 3"

	err := findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("query.in_stock_after_2010", t.timers),
		label, "In-stock books published after 2010",
		bson.M{"in_stock": true, "published_year": bson.M{"$gt": 2010}})
	if err != nil {
		return err
	}

	err = findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("query.projection", t.timers),
		label, "Title, author and price only",
		bson.M{},
		options.Find().SetProjection(bson.M{"title": 1, "author": 1, "price": 1, "_id": 0}))
	if err != nil {
		return err
	}

	err = findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("query.sort_price_asc", t.timers),
		label, "Books sorted by price, ascending",
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "price", Value: 1}}))
	if err != nil {
		return err
	}

	err = findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("query.sort_price_desc", t.timers),
		label, "Books sorted by price, descending",
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "price", Value: -1}}))
	if err != nil {
		return err
	}

	for page := 1; page <= 2; page++ {
		err = findAndPrint(ctx, collection, out,
			metrics.GetOrRegisterTimer("query.paginate", t.timers),
			label, fmt.Sprintf("Page %d (%d books per page)", page, pageSize),
			bson.M{},
			pageOptions(page, pageSize))
		if err != nil {
			return err
		}
	}

	return nil
}
