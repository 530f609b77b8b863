package repository

import (
	"context"
	"errors"
	"fmt"

	"roastery/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, origin, tasting_notes, roast_level, image_url, price_12oz, price_2lb, is_active, created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Origin, &p.TastingNotes, &p.RoastLevel,
		&p.ImageURL, &p.Price12oz, &p.Price2lb, &p.IsActive, &p.CreatedAt,
	)
}

// ListActive retrieves active products ordered by name.
func (r *productRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active
		ORDER BY name
	`

	return r.queryProducts(ctx, query)
}

// GetActiveByID retrieves a single active product by its ID.
func (r *productRepository) GetActiveByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("product_id", id).Msg("product not found or inactive")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetActiveByIDs retrieves active products matching the given IDs, keyed by ID.
func (r *productRepository) GetActiveByIDs(ctx context.Context, ids []int64) (map[int64]model.Product, error) {
	if len(ids) == 0 {
		return map[int64]model.Product{}, nil
	}

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active AND id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	products := make(map[int64]model.Product, len(ids))
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// ListAll retrieves every product including inactive ones.
func (r *productRepository) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY name
	`

	return r.queryProducts(ctx, query)
}

// Create inserts a new product and fills its ID and CreatedAt.
func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
		INSERT INTO products (name, origin, tasting_notes, roast_level, image_url, price_12oz, price_2lb, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		p.Name, p.Origin, p.TastingNotes, p.RoastLevel, p.ImageURL,
		p.Price12oz, p.Price2lb, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("name", p.Name).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Int64("product_id", p.ID).Msg("product created")
	return nil
}

// Update overwrites an existing product. Returns false when absent.
func (r *productRepository) Update(ctx context.Context, p *model.Product) (bool, error) {
	query := `
		UPDATE products
		SET name = $2, origin = $3, tasting_notes = $4, roast_level = $5,
		    image_url = $6, price_12oz = $7, price_2lb = $8, is_active = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		p.ID, p.Name, p.Origin, p.TastingNotes, p.RoastLevel,
		p.ImageURL, p.Price12oz, p.Price2lb, p.IsActive,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", p.ID).Msg("failed to update product")
		return false, fmt.Errorf("failed to update product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a product. Returns false when it does not exist.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *productRepository) queryProducts(ctx context.Context, query string) ([]model.Product, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
