package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"

	"hackadmin/internal/repository"
)

const usage = "Usage: go run ./cmd/migrate [up|drop|prune <days>|status]"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("Audit log table created successfully")

	case "drop":
		if _, err := conn.Exec(ctx, repository.AuditDropDDL); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("Audit log table dropped successfully")

	case "prune":
		if len(os.Args) < 3 {
			fmt.Println(usage)
			os.Exit(1)
		}
		days, err := strconv.Atoi(os.Args[2])
		if err != nil || days <= 0 {
			log.Fatalf("Invalid retention in days: %q", os.Args[2])
		}
		n, err := pruneEntries(ctx, conn, days)
		if err != nil {
			log.Fatalf("Failed to prune audit log: %v", err)
		}
		fmt.Printf("Pruned %d audit entries older than %d days\n", n, days)

	case "status":
		if err := printStatus(ctx, conn); err != nil {
			log.Fatalf("Failed to read audit log status: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	for _, query := range strings.Split(repository.AuditTableDDL, ";") {
		query = strings.TrimSpace(query)
		if query == "" {
			continue
		}
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", getTableName(query))
	}
	return nil
}

func pruneEntries(ctx context.Context, conn *pgx.Conn, days int) (int64, error) {
	tag, err := conn.Exec(ctx,
		`DELETE FROM admin_audit_log WHERE created_at < NOW() - make_interval(days => $1)`, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func printStatus(ctx context.Context, conn *pgx.Conn) error {
	var (
		count int64
		last  *string
	)
	err := conn.QueryRow(ctx,
		`SELECT COUNT(*), MAX(created_at)::text FROM admin_audit_log`).Scan(&count, &last)
	if err != nil {
		return err
	}
	fmt.Printf("  Entries: %d\n", count)
	if last != nil {
		fmt.Printf("  Latest:  %s\n", *last)
	}
	return nil
}

func getTableName(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
