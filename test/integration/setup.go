package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"globaltrade/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, applies the embedded
// migrations and returns a connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Apply the same migrations the server runs at startup
	if err := database.Migrate(connStr, zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeededAccount holds the IDs of a seeded user and profile.
type SeededAccount struct {
	ID          uuid.UUID
	CompanyName string
}

// SeedAccount inserts a user with its profile and returns the IDs.
func SeedAccount(t *testing.T, pool *pgxpool.Pool, userType, companyName, country string, verified bool) SeededAccount {
	t.Helper()

	ctx := context.Background()
	email := fmt.Sprintf("%s@example.com", uuid.NewString())

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
		email, "x",
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO profiles (id, user_type, company_name, full_name, country, verified)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, userType, companyName, "Test User", country, verified,
	)
	if err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	return SeededAccount{ID: id, CompanyName: companyName}
}

// SeedCategory inserts a category and returns its ID.
func SeedCategory(t *testing.T, pool *pgxpool.Pool, name, slug string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		"INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id",
		name, slug,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed category %s: %v", name, err)
	}
	return id
}

// SeedProductRow describes one listing to seed.
type SeedProductRow struct {
	SellerID      uuid.UUID
	CategoryID    *uuid.UUID
	Title         string
	Description   string
	Price         float64
	OriginCountry string
	HSCode        string
	Status        string
	Featured      bool
}

// SeedProduct inserts a listing and returns its ID.
func SeedProduct(t *testing.T, pool *pgxpool.Pool, row SeedProductRow) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := pool.QueryRow(context.Background(),
		`INSERT INTO products (seller_id, category_id, title, description, price, origin_country, hs_code, status, featured)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		row.SellerID, row.CategoryID, row.Title, row.Description, row.Price,
		row.OriginCountry, row.HSCode, row.Status, row.Featured,
	).Scan(&id)
	if err != nil {
		t.Fatalf("failed to seed product %s: %v", row.Title, err)
	}
	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"inquiries", "tariffs", "products", "categories", "profiles", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
