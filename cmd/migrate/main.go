package main

import (
	"log"
	"os"

	"ai-chat-be/internal/migration"
	"ai-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	before, err := migration.CurrentVersion(db)
	if err != nil {
		log.Fatal("Error: Failed to read schema version:", err)
	}
	color.Cyan("Current schema version: %d", before)

	// 3. Walk the registered migrations inside one transaction
	runner := migration.NewRunner()
	if err := runner.Run(db); err != nil {
		color.Red("Migration failed, all changes rolled back: %v", err)
		os.Exit(1)
	}

	after, err := migration.CurrentVersion(db)
	if err != nil {
		log.Fatal("Error: Failed to read schema version:", err)
	}

	if after == before {
		color.Green("Schema already up to date (version %d)", after)
	} else {
		color.Green("Migrated schema from version %d to %d", before, after)
	}
}
