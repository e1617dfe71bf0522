package database

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is a global variable to hold the database connection pool.
var DB *pgxpool.Pool

// InitDB sets up the database connection pool and bootstraps the schema.
func InitDB(databaseURL string) {
	var err error
	DB, err = pgxpool.New(context.Background(), databaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	if err = DB.Ping(context.Background()); err != nil {
		log.Fatalf("Database ping failed: %v\n", err)
	}

	if err = EnsureSchema(context.Background(), DB); err != nil {
		log.Fatalf("Schema bootstrap failed: %v\n", err)
	}

	log.Println("Successfully connected to the database")
}

// GetDB returns the database connection pool.
func GetDB() *pgxpool.Pool {
	return DB
}

// CloseDB closes the database connection pool.
func CloseDB() {
	if DB != nil {
		DB.Close()
		log.Println("Database connection pool closed")
	}
}
