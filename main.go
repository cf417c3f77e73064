package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rcrowley/go-metrics"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	mongoURI       = "mongodb://localhost:27017"
	databaseName   = "plp_bookstore"
	collectionName = "books"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("Workflow failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to close connection: %v", err)
			return
		}
		log.Println("Connection closed.")
	}()

	collection := &MongoDBCollection{client.Database(databaseName).Collection(collectionName)}
	out := NewPrinter(os.Stdout)
	timers := metrics.NewRegistry()

	if err := Seed(ctx, collection); err != nil {
		return fmt.Errorf("seed sample books: %w", err)
	}

	tasks := []Task{
		CRUDTask{timers: timers},
		QueryTask{timers: timers},
		AggregationTask{timers: timers},
		IndexTask{},
	}
	for _, task := range tasks {
		out.Banner(task.Name())
		if err := task.Run(ctx, collection, out); err != nil {
			return fmt.Errorf("%s: %w", task.Name(), err)
		}
	}

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	out.Resultf("\n%d books in the collection after the workflow", total)

	printTimings(timers)
	return nil
}
