package postgres

import (
	"context"
	"errors"

	"velora-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CartRepository struct {
	db *pgxpool.Pool
}

func NewCartRepository(db *pgxpool.Pool) domain.CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	q := querier(ctx, r.db)

	var cart domain.Cart
	err := q.QueryRow(ctx, `
		SELECT id, user_id, created_at, updated_at
		FROM carts WHERE user_id = $1`, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := q.Query(ctx, `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.size, ci.quantity, `+prefixed("p", productColumns)+`
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		var it domain.CartItem
		p := &it.Product
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.Size, &it.Quantity,
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Image, &p.Category,
			&p.Sizes, &p.Colors, &p.Featured, &p.IsNew, &p.Stock, &p.ReturnAvailable,
			&p.ReturnPeriodDays, &p.Rating, &p.RatingCount, &p.RatingSum,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, it)
	}
	return &cart, rows.Err()
}

func (r *CartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	q := querier(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO carts (id, user_id)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`, cart.ID, cart.UserID).
		Scan(&cart.CreatedAt, &cart.UpdatedAt)
}

func (r *CartRepository) UpsertItem(ctx context.Context, cartID, productID, size string, quantity int) error {
	q := querier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO cart_items (id, cart_id, product_id, size, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, product_id, size)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		uuid.NewString(), cartID, productID, size, quantity)
	if err != nil {
		return err
	}
	_, err = q.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, productID, size string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2 AND size = $3`, cartID, productID, size)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	_, err = q.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}

func (r *CartRepository) Clear(ctx context.Context, cartID string) error {
	q := querier(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return err
	}
	_, err := q.Exec(ctx, `UPDATE carts SET updated_at = now() WHERE id = $1`, cartID)
	return err
}
