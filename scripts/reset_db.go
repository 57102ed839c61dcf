package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL BUSINESS DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all managers (bores, stock, expenses cascade)")
	fmt.Println("  - Delete all godown pipe stock")
	fmt.Println("  - Delete all online transactions")
	fmt.Println("  - Delete all users except the owner")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "borewell_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Resetting database...")

	ctx := context.Background()

	// Managers cascade to bores, payments, workers, expenses, diesel,
	// agents, and pipe logs. Godown stock and online transactions have no
	// manager link and go separately.
	statements := []string{
		"DELETE FROM managers",
		"DELETE FROM pipe_stocks",
		"DELETE FROM online_transactions",
		"DELETE FROM users WHERE role <> 'owner'",
		"ALTER SEQUENCE online_transactions_id_seq RESTART WITH 1",
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("Failed: %s: %v\n", stmt, err)
		}
		fmt.Printf("  ✓ %s\n", stmt)
	}

	fmt.Println()
	fmt.Println("✅ Database reset complete.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
