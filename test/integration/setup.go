package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roastery/internal/auth"
	"roastery/internal/database"

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

// SetupTestDB creates a PostgreSQL test container, connects a pool and
// applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

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

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
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

// SeedCatalogue inserts test products with known IDs. Product 4 is
// inactive and must never surface on the public endpoints.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id        int64
		name      string
		origin    string
		roast     string
		price12oz float64
		price2lb  float64
		active    bool
	}{
		{1, "Ethiopia Yirgacheffe", "Yirgacheffe, Ethiopia", "Light", 18.00, 48.00, true},
		{2, "Colombia Huila", "Huila, Colombia", "Medium", 16.50, 44.00, true},
		{3, "Sumatra Mandheling", "North Sumatra, Indonesia", "Dark", 17.00, 46.00, true},
		{4, "Retired Blend", "Various", "Medium", 15.00, 40.00, false},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, origin, roast_level, price_12oz, price_2lb, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.id, p.name, p.origin, p.roast, p.price12oz, p.price2lb, p.active,
		)
		if err != nil {
			t.Fatalf("failed to seed product %d: %v", p.id, err)
		}
	}

	// Explicit IDs bypass the sequence; advance it so later inserts
	// that rely on the default do not collide.
	if _, err := pool.Exec(ctx, "SELECT setval('products_id_seq', 100)"); err != nil {
		t.Fatalf("failed to advance product sequence: %v", err)
	}
}

// SeedAdmin inserts an admin user with the given credentials.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	_, err = pool.Exec(context.Background(),
		"INSERT INTO admin_users (username, password_hash) VALUES ($1, $2)",
		username, hash,
	)
	if err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "contact_messages", "products", "admin_users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
