package database

//go:generate mockgen -source=collection.go -destination=mock_collection.go -package=database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionHelper is the slice of *mongo.Collection the snapshot store
// needs, narrowed so tests can substitute a mock.
type CollectionHelper interface {
	FindOne(ctx context.Context, filter interface{},
		opts ...*options.FindOneOptions) SingleResultHelper
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{},
		opts ...*options.ReplaceOptions) error
	DeleteOne(ctx context.Context, filter interface{},
		opts ...*options.DeleteOptions) error
}

type SingleResultHelper interface {
	Decode(v interface{}) error
}

type MongoCollection struct {
	Collection *mongo.Collection
}

func (mc *MongoCollection) FindOne(ctx context.Context, filter interface{},
	opts ...*options.FindOneOptions) SingleResultHelper {
	return mc.Collection.FindOne(ctx, filter, opts...)
}

func (mc *MongoCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{},
	opts ...*options.ReplaceOptions) error {
	_, err := mc.Collection.ReplaceOne(ctx, filter, replacement, opts...)
	return err
}

func (mc *MongoCollection) DeleteOne(ctx context.Context, filter interface{},
	opts ...*options.DeleteOptions) error {
	_, err := mc.Collection.DeleteOne(ctx, filter, opts...)
	return err
}
