package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fadedpez/eights/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	createCmd := flag.NewFlagSet("create", flag.ExitOnError)
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)

	migrationsDir := createCmd.String("dir", "pkg/db/migrations/sql", "Directory to store migrations")

	dbPath := migrateCmd.String("db", "data/eights.db", "Path to SQLite database")
	migrateDir := migrateCmd.String("dir", "", "Directory containing migrations (defaults to the embedded schema)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "create":
		createCmd.Parse(os.Args[2:])
		if createCmd.NArg() < 1 {
			fmt.Println("Error: Missing migration description")
			createCmd.Usage()
			os.Exit(1)
		}
		createNewMigration(*migrationsDir, createCmd.Arg(0))

	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		applyMigrations(*dbPath, *migrateDir)

	case "help":
		printUsage()

	default:
		fmt.Printf("Error: Unknown command '%s'\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  go run cmd/migration/main.go create DESCRIPTION  - Create a new migration")
	fmt.Println("  go run cmd/migration/main.go migrate            - Apply pending migrations")
	fmt.Println("  go run cmd/migration/main.go help              - Show this help")
	fmt.Println("\nExamples:")
	fmt.Println("  go run cmd/migration/main.go create \"add round index\"")
	fmt.Println("  go run cmd/migration/main.go migrate -db data/eights.db")
}

func createNewMigration(dir, description string) {
	filePath, err := migrations.CreateMigration(dir, description)
	if err != nil {
		log.Fatalf("Error creating migration: %v", err)
	}

	fmt.Printf("Created migration file: %s\n", filePath)
	fmt.Println("Edit this file to add your database schema changes.")
}

func applyMigrations(dbPath, dir string) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	var source fs.FS = migrations.Embedded()
	if dir != "" {
		source = os.DirFS(dir)
	}

	applied, err := migrations.NewMigrator(db, source).MigrateUp()
	if err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	fmt.Printf("Applied %d migration(s)\n", applied)
}
