package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// Seed inserts the default admin user and a starter catalogue when the
// corresponding tables are empty. It is idempotent and safe to run on
// every startup.
func Seed(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	if err := seedAdminUser(ctx, pool, logger); err != nil {
		return err
	}
	return seedProducts(ctx, pool, logger)
}

// seedAdminUser creates the default admin/admin account if no admin user
// exists yet. The password hash is generated fresh on each seed so the
// bcrypt salt is never shared between deployments.
func seedAdminUser(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO admin_users (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING`,
		"admin", string(hash),
	)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logger.Info().Str("username", "admin").Msg("seeded default admin user")
	return nil
}

// seedProducts inserts a starter catalogue when the products table is empty.
func seedProducts(ctx context.Context, pool *pgxpool.Pool, logger zerolog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []struct {
		name         string
		origin       string
		tastingNotes string
		roastLevel   string
		imageURL     string
		price12oz    float64
		price2lb     float64
	}{
		{"Ethiopia Yirgacheffe", "Ethiopia", "Jasmine, lemon zest, black tea", "Light", "/images/ethiopia-yirgacheffe.jpg", 18.00, 48.00},
		{"Colombia Huila", "Colombia", "Caramel, red apple, milk chocolate", "Medium", "/images/colombia-huila.jpg", 16.50, 44.00},
		{"Sumatra Mandheling", "Indonesia", "Dark chocolate, cedar, earthy", "Dark", "/images/sumatra-mandheling.jpg", 17.00, 46.00},
		{"Guatemala Antigua", "Guatemala", "Cocoa, toffee, orange", "Medium", "/images/guatemala-antigua.jpg", 17.50, 47.00},
		{"Decaf House Blend", "Brazil & Colombia", "Brown sugar, hazelnut, smooth", "Medium", "/images/decaf-house-blend.jpg", 16.25, 43.00},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (name, origin, tasting_notes, roast_level, image_url, price_12oz, price_2lb, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)`,
			p.name, p.origin, p.tastingNotes, p.roastLevel, p.imageURL, p.price12oz, p.price2lb,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %q: %w", p.name, err)
		}
	}

	logger.Info().Int("count", len(products)).Msg("seeded starter catalogue")
	return nil
}
