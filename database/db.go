package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for Go
)

// DB is the global handle to the durable client storage
var DB *sql.DB

// InitDB opens the SQLite database and creates the schema
func InitDB(dataSourceName string) error {
	var err error

	DB, err = sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return err
	}

	if err = DB.Ping(); err != nil {
		return err
	}

	if err = createSchema(); err != nil {
		return err
	}

	log.Println("Database connection established.")
	return nil
}

// createSchema defines and executes the SQL schema to create the necessary tables
func createSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS session_state (
			key TEXT PRIMARY KEY,
			version INTEGER NOT NULL,
			data TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS roster (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT '',
			password TEXT NOT NULL,
			access_token TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
	}

	for _, query := range queries {
		if _, err := DB.Exec(query); err != nil {
			return fmt.Errorf("error creating table: %w", err)
		}
	}
	return nil
}
