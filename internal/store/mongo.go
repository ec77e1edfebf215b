package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/isha-gupta80/loomaproject2222/internal/model"
)

type mongoCollection[T any] struct {
	coll *mongo.Collection
}

func (c *mongoCollection[T]) Find(ctx context.Context, filter Filter) ([]T, error) {
	cursor, err := c.coll.Find(ctx, filter.Query())
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection[T]) FindSorted(ctx context.Context, filter Filter, timeField string, limit int64) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: timeField, Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := c.coll.Find(ctx, filter.Query(), opts)
	if err != nil {
		return nil, err
	}
	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (c *mongoCollection[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	var doc T
	err := c.coll.FindOne(ctx, filter.Query()).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return doc, model.ErrNotFound
	}
	return doc, err
}

func (c *mongoCollection[T]) Insert(ctx context.Context, doc T) error {
	_, err := c.coll.InsertOne(ctx, doc)
	return err
}

func (c *mongoCollection[T]) ReplaceOne(ctx context.Context, filter Filter, doc T) (bool, error) {
	result, err := c.coll.ReplaceOne(ctx, filter.Query(), doc)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func (c *mongoCollection[T]) DeleteOne(ctx context.Context, filter Filter) (bool, error) {
	result, err := c.coll.DeleteOne(ctx, filter.Query())
	if err != nil {
		return false, err
	}
	return result.DeletedCount == 1, nil
}

func (c *mongoCollection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	result, err := c.coll.DeleteMany(ctx, filter.Query())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (c *mongoCollection[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	return c.coll.CountDocuments(ctx, filter.Query())
}
