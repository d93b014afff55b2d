package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/maikadev/maika-api/internal/config"
	"github.com/maikadev/maika-api/internal/domain"
)

// Collection names used by the API.
const (
	CollMenu         = "menu"
	CollReservations = "reservations"
	CollStaff        = "staff"
	CollInventories  = "inventories"
	CollOrders       = "orders"
	CollPayments     = "payments"
	CollUsers        = "users"
)

const serverSelectionTimeout = 5 * time.Second

// Store owns the MongoDB client and database handle shared by every service.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetAuth(options.Credential{
			AuthMechanism: "SCRAM-SHA-256",
			AuthSource:    "admin",
			Username:      cfg.User,
			Password:      cfg.Password,
		}).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{client: client, db: client.Database(cfg.Database)}, nil
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the raw database handle.
func (s *Store) Database() *mongo.Database {
	return s.db
}

// Ping checks the connection, used by the healthcheck route.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return domain.Storage("ping", err)
	}
	return nil
}
