package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Schema statements for a fresh café database. Column names, including the
// misspelled timeStampRecieved, match the deployment the console expects.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		login VARCHAR(50) PRIMARY KEY,
		password VARCHAR(60) NOT NULL,
		phoneNum VARCHAR(16) NOT NULL DEFAULT '',
		favItems TEXT NOT NULL DEFAULT '',
		type VARCHAR(8) NOT NULL DEFAULT 'Customer'
	)`,
	`CREATE TABLE IF NOT EXISTS Menu (
		itemName VARCHAR(50) PRIMARY KEY,
		type VARCHAR(20) NOT NULL,
		price NUMERIC(10,2) NOT NULL CHECK (price > 0),
		description TEXT NOT NULL DEFAULT '',
		imageURL TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS Orders (
		orderid BIGSERIAL PRIMARY KEY,
		login VARCHAR(50) NOT NULL REFERENCES Users(login),
		paid BOOLEAN NOT NULL DEFAULT false,
		timeStampRecieved TIMESTAMP NOT NULL DEFAULT NOW(),
		total NUMERIC(10,2) NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS ItemStatus (
		orderid BIGINT NOT NULL REFERENCES Orders(orderid),
		itemName VARCHAR(50) NOT NULL,
		amount INTEGER NOT NULL,
		lastUpdated TIMESTAMP NOT NULL DEFAULT NOW(),
		status VARCHAR(20) NOT NULL DEFAULT 'Has Not Started',
		comments TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (orderid, itemName)
	)`,
}

func main() {
	login := flag.String("login", "", "Manager login")
	password := flag.String("password", "", "Manager password")
	flag.Parse()

	if *login == "" {
		*login = os.Getenv("SEED_LOGIN")
	}
	if *password == "" {
		*password = os.Getenv("SEED_PASSWORD")
	}
	if *login == "" {
		*login = "manager"
	}
	if *password == "" {
		*password = "password123"
		log.Println("WARNING: Using default password 'password123'. Change immediately in production!")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		dbURL = "postgres://postgres@127.0.0.1:5432/cafe?sslmode=disable"
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	// Schema plus the first Manager land together or not at all.
	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed to create schema: %v", err)
		}
	}

	if err := seedManager(ctx, tx, *login, *password); err != nil {
		log.Fatalf("Failed to seed manager: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Println("Seed completed successfully")
	log.Printf("Manager login: %s", *login)
}

// seedManager creates the bootstrap Manager account, skipping when the login
// already exists.
func seedManager(ctx context.Context, tx pgx.Tx, login, password string) error {
	var existing string
	err := tx.QueryRow(ctx, `SELECT login FROM Users WHERE login = $1`, login).Scan(&existing)
	if err == nil {
		log.Printf("User '%s' already exists, skipping", login)
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO Users (login, password, phoneNum, favItems, type) VALUES ($1, $2, '', '', 'Manager')`,
		login, string(hash))
	if err != nil {
		return err
	}
	log.Printf("Created manager user '%s'", login)
	return nil
}
