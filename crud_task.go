package main

import (
	"context"
	"fmt"

	"github.com/rcrowley/go-metrics"
	"go.mongodb.org/mongo-driver/bson"
)

// CRUDTask covers point and range queries plus a price update and a delete,
// each narrowed by a single field.
type CRUDTask struct {
	timers metrics.Registry
}

func (t CRUDTask) Name() string { return "Task 2: Basic CRUD Operations" }

func (t CRUDTask) Run(ctx context.Context, collection CollectionAPI, out *Printer) error {
	const label = "Task 2"

	err := findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("crud.find_by_genre", t.timers),
		label, "Books in the Fiction genre",
		bson.M{"genre": "Fiction"})
	if err != nil {
		return err
	}

	err = findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("crud.find_after_year", t.timers),
		label, "Books published after 1950",
		bson.M{"published_year": bson.M{"$gt": 1950}})
	if err != nil {
		return err
	}

	err = findAndPrint(ctx, collection, out,
		metrics.GetOrRegisterTimer("crud.find_by_author", t.timers),
		label, "Books by George Orwell",
		bson.M{"author": "George Orwell"})
	if err != nil {
		return err
	}

	out.Section(label, "Update the price of The Hobbit")
	filter := bson.M{"title": "The Hobbit"}
	result, err := collection.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"price": 15.99}})
	if err != nil {
		return fmt.Errorf("update price: %w", err)
	}
	out.Resultf("matched %d, modified %d", result.MatchedCount, result.ModifiedCount)

	var updated bson.M
	if err := collection.FindOne(ctx, filter).Decode(&updated); err != nil {
		return fmt.Errorf("re-read updated book: %w", err)
	}
	out.Doc(updated)

	out.Section(label, "Delete Moby Dick")
	deleted, err := collection.DeleteOne(ctx, bson.M{"title": "Moby Dick"})
	if err != nil {
		return fmt.Errorf("delete by title: %w", err)
	}
	out.Resultf("deleted %d", deleted.DeletedCount)

	return nil
}
