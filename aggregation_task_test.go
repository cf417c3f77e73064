package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAveragePriceByGenrePipeline(t *testing.T) {
	pipeline := averagePriceByGenrePipeline()

	group := pipeline[0]["$group"].(bson.M)
	assert.Equal(t, "$genre", group["_id"])
	assert.Equal(t, bson.M{"$avg": "$price"}, group["averagePrice"])
	assert.Equal(t, bson.M{"$sum": 1}, group["bookCount"])
	assert.Equal(t, bson.M{"averagePrice": -1}, pipeline[1]["$sort"])
}

func TestTopAuthorPipelineBreaksTiesByName(t *testing.T) {
	pipeline := topAuthorPipeline()

	assert.Equal(t, bson.D{
		{Key: "bookCount", Value: -1},
		{Key: "_id", Value: 1},
	}, pipeline[1]["$sort"])
	assert.Equal(t, bson.M{"$limit": 1}, pipeline[2])
}

func TestBooksByDecadePipeline(t *testing.T) {
	pipeline := booksByDecadePipeline()

	group := pipeline[0]["$group"].(bson.M)
	assert.Equal(t, bson.M{
		"$subtract": bson.A{"$published_year", bson.M{"$mod": bson.A{"$published_year", 10}}},
	}, group["_id"])
	assert.Equal(t, bson.M{"_id": 1}, pipeline[1]["$sort"])
	assert.Equal(t, bson.M{"_id": 0, "decade": "$_id", "count": 1}, pipeline[2]["$project"])
}

func TestAggregationTaskRun(t *testing.T) {
	coll := new(MockCollection)

	coll.On("Aggregate", mock.Anything, averagePriceByGenrePipeline(), mock.Anything).
		Return(docsCursor(t,
			bson.M{"_id": "Fantasy", "averagePrice": 17.49, "bookCount": 2},
			bson.M{"_id": "Fiction", "averagePrice": 10.74, "bookCount": 4},
		), nil).Once()
	coll.On("Aggregate", mock.Anything, topAuthorPipeline(), mock.Anything).
		Return(docsCursor(t, bson.M{"_id": "George Orwell", "bookCount": 2}), nil).Once()
	coll.On("Aggregate", mock.Anything, booksByDecadePipeline(), mock.Anything).
		Return(docsCursor(t,
			bson.M{"decade": 1810, "count": 1},
			bson.M{"decade": 1930, "count": 2},
		), nil).Once()

	var buf bytes.Buffer
	task := AggregationTask{timers: metrics.NewRegistry()}
	err := task.Run(context.Background(), coll, NewPrinter(&buf))

	assert.NoError(t, err)
	coll.AssertExpectations(t)

	out := buf.String()
	assert.Contains(t, out, "[Task 4] Average price and book count per genre")
	assert.Contains(t, out, "George Orwell")
	assert.Contains(t, out, "1930")
}
