// internal/database/mongodb.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activity-hub/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDB stores each snapshot as one document keyed by _id.
type MongoDB struct {
	Client    *mongo.Client
	Snapshots CollectionHelper
}

type snapshotDocument struct {
	Key       string    `bson:"_id"`
	Data      string    `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoDB(ctx context.Context, uri, database string, logger *zap.SugaredLogger) (*MongoDB, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
	}

	// Ping the database to verify connection
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %v", err)
	}

	logger.Infof("Successfully connected to MongoDB!")

	return &MongoDB{
		Client:    client,
		Snapshots: &MongoCollection{Collection: client.Database(database).Collection("snapshots")},
	}, nil
}

func (m *MongoDB) Load(ctx context.Context, key string) ([]byte, error) {
	var doc snapshotDocument
	err := m.Snapshots.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, snapshotNotFound(key)
		}
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to load snapshot", err)
	}
	return []byte(doc.Data), nil
}

func (m *MongoDB) Save(ctx context.Context, key string, data []byte) error {
	doc := snapshotDocument{Key: key, Data: string(data), UpdatedAt: time.Now().UTC()}
	err := m.Snapshots.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to save snapshot", err)
	}
	return nil
}

func (m *MongoDB) Delete(ctx context.Context, key string) error {
	if err := m.Snapshots.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return utils.NewAppError(utils.ErrDatabase, "failed to delete snapshot", err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
