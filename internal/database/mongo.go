package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Gangulr/finace/internal/logger"
	"github.com/Gangulr/finace/internal/store"
)

const mongoConnectTimeout = 10 * time.Second

// MongoManager owns the MongoDB client.
type MongoManager struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoManager connects to uri and verifies the server answers.
func NewMongoManager(ctx context.Context, uri, dbName string) (*MongoManager, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Get().Infow("Connected to MongoDB", "database", dbName)
	return &MongoManager{client: client, db: client.Database(dbName)}, nil
}

// EnsureIndexes creates the collection indexes the stores rely on.
func (m *MongoManager) EnsureIndexes(ctx context.Context) error {
	return store.EnsureIndexes(ctx, m.db)
}

// Database returns the application database.
func (m *MongoManager) Database() *mongo.Database {
	return m.db
}

// Ping checks the connection.
func (m *MongoManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (m *MongoManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
