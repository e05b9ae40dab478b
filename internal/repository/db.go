package repository

import (
	"context"
	"log/slog"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Mongo is the process-wide handle to the document store. The
// connection is established lazily on first use and shared by all
// requests; a failed attempt is not cached, so the next caller retries
// instead of reusing a broken handle.
type Mongo struct {
	url    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

// NewMongo creates a lazy handle. No connection is attempted here.
func NewMongo(url, dbName string) *Mongo {
	return &Mongo{url: url, dbName: dbName}
}

// Database returns the shared database handle, connecting on first
// use. Only one initialization proceeds at a time; concurrent first
// callers wait for its result.
func (m *Mongo) Database(ctx context.Context) (*mongo.Database, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		return m.client.Database(m.dbName), nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(m.url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	slog.Info("mongodb connected")
	m.client = client
	return m.client.Database(m.dbName), nil
}

// Close disconnects the cached client, if any.
func (m *Mongo) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
