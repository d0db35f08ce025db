package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 3 * time.Second

// ConnectMongo builds the process-wide Mongo client. A failed ping still
// returns the client: the driver reconnects lazily, so the caller may log the
// error and keep serving.
func ConnectMongo(env Env) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(env.MongoURI).
		SetServerSelectionTimeout(env.StoreTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pctx, pcancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pcancel()
	if err := client.Ping(pctx, nil); err != nil {
		return client, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// ConnectMySQL opens the shared pool. Same contract as ConnectMongo for ping
// failures.
func ConnectMySQL(env Env) (*sql.DB, error) {
	db, err := sql.Open("mysql", env.MySQLDSN)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return db, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
