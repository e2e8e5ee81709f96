package postgres

import (
	"context"
	"errors"

	"velora-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) domain.OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	q := querier(ctx, r.db)

	addr, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return err
	}

	err = q.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, total, shipping_address, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		order.ID, order.UserID, order.Total, addr, order.PaymentMethod, order.Status).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		it := &order.Items[i]
		it.OrderID = order.ID
		_, err := q.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, size, price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.OrderID, it.ProductID, it.Quantity, it.Size, it.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var addr []byte
	err := row.Scan(&o.ID, &o.UserID, &o.Total, &addr, &o.PaymentMethod, &o.Status,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(addr, &o.ShippingAddress); err != nil {
		return nil, err
	}
	return &o, nil
}

const orderColumns = `id, user_id, total, shipping_address, payment_method, status, created_at, updated_at`

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := querier(ctx, r.db)
	order, err := scanOrder(q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID string) ([]domain.Order, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *OrderRepository) GetAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, int64, error) {
	q := querier(ctx, r.db)

	cond := `($1 = '' OR status = $1) AND ($2 = '' OR user_id = $2)`

	var total int64
	err := q.QueryRow(ctx, `SELECT count(*) FROM orders WHERE `+cond, filter.Status, filter.UserID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}

	rows, err := q.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE `+cond+`
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`, filter.Status, filter.UserID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	orders, err := r.collect(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) collect(ctx context.Context, rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()
	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

// loadItems attaches order items (with their product snapshot joined in) to
// each order in a single query.
func (r *OrderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	q := querier(ctx, r.db)

	ids := make([]string, len(orders))
	byID := make(map[string]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []domain.OrderItem{}
	}

	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.size, oi.price, `+prefixed("p", productColumns)+`
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		p := &it.Product
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Size, &it.Price,
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Image, &p.Category,
			&p.Sizes, &p.Colors, &p.Featured, &p.IsNew, &p.Stock, &p.ReturnAvailable,
			&p.ReturnPeriodDays, &p.Rating, &p.RatingCount, &p.RatingSum,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE orders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) GetSalesFacts(ctx context.Context) ([]domain.SalesFact, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT created_at, total FROM orders ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	facts := []domain.SalesFact{}
	for rows.Next() {
		var f domain.SalesFact
		if err := rows.Scan(&f.CreatedAt, &f.Total); err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, rows.Err()
}
