package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"velora-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) domain.ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, slug, description, price, image, category, sizes, colors,
	featured, is_new, stock, return_available, return_period_days,
	rating, rating_count, rating_sum, created_at, updated_at`

// prefixed qualifies every column in a comma-separated list with a table
// alias, for use in joins.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Image, &p.Category,
		&p.Sizes, &p.Colors, &p.Featured, &p.IsNew, &p.Stock, &p.ReturnAvailable,
		&p.ReturnPeriodDays, &p.Rating, &p.RatingCount, &p.RatingSum, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()
	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int64, error) {
	q := querier(ctx, r.db)

	where := []string{"true"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Query != "" {
		p := arg("%" + filter.Query + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if filter.Category != "" {
		where = append(where, "category = "+arg(filter.Category))
	}
	if filter.MinPrice > 0 {
		where = append(where, "price >= "+arg(filter.MinPrice))
	}
	if filter.MaxPrice > 0 {
		where = append(where, "price <= "+arg(filter.MaxPrice))
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := q.QueryRow(ctx, `SELECT count(*) FROM products WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	orderBy := "created_at DESC"
	switch filter.Sort {
	case "price_asc":
		orderBy = "price ASC"
	case "price_desc":
		orderBy = "price DESC"
	case "rating":
		orderBy = "rating DESC, rating_count DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s ORDER BY %s LIMIT %s OFFSET %s`,
		productColumns, cond, orderBy, arg(filter.Limit), arg(filter.Offset))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductRepository) GetFeatured(ctx context.Context, limit int) ([]domain.Product, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE featured
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *ProductRepository) GetNewest(ctx context.Context, limit int) ([]domain.Product, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return scanProducts(rows)
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	q := querier(ctx, r.db)
	return scanProduct(q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	q := querier(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO products (id, name, slug, description, price, image, category, sizes, colors,
			featured, is_new, stock, return_available, return_period_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		product.ID, product.Name, product.Slug, product.Description, product.Price,
		product.Image, product.Category, product.Sizes, product.Colors,
		product.Featured, product.IsNew, product.Stock,
		product.ReturnAvailable, product.ReturnPeriodDays).
		Scan(&product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5, image = $6, category = $7,
			sizes = $8, colors = $9, featured = $10, is_new = $11, stock = $12,
			return_available = $13, return_period_days = $14, updated_at = now()
		WHERE id = $1`,
		product.ID, product.Name, product.Slug, product.Description, product.Price,
		product.Image, product.Category, product.Sizes, product.Colors,
		product.Featured, product.IsNew, product.Stock,
		product.ReturnAvailable, product.ReturnPeriodDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		// Order and return lines keep purchased products referenced.
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: product appears in order history", domain.ErrConflict)
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) DecrementStock(ctx context.Context, productID string, quantity int) error {
	q := querier(ctx, r.db)

	// Conditional decrement: the WHERE clause guarantees stock never goes
	// negative, even with concurrent orders racing on the same row.
	tag, err := q.Exec(ctx, `
		UPDATE products
		SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish a missing product from insufficient stock.
	var stock int
	err = q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return domain.ErrInsufficientStock
}

func (r *ProductRepository) RestoreStock(ctx context.Context, productID string, quantity int) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE products
		SET stock = stock + $2, updated_at = now()
		WHERE id = $1`, productID, quantity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) ApplyRatingDelta(ctx context.Context, productID string, sumDelta float64, countDelta int) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE products
		SET rating_sum = rating_sum + $2,
			rating_count = rating_count + $3,
			rating = CASE WHEN rating_count + $3 > 0
				THEN (rating_sum + $2) / (rating_count + $3)
				ELSE 0 END,
			updated_at = now()
		WHERE id = $1`, productID, sumDelta, countDelta)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
