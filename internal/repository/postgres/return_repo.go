package postgres

import (
	"context"
	"errors"

	"velora-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReturnRepository struct {
	db *pgxpool.Pool
}

func NewReturnRepository(db *pgxpool.Pool) domain.ReturnRepository {
	return &ReturnRepository{db: db}
}

const returnColumns = `id, order_id, user_id, reason, status, refund_amount, admin_notes,
	images, return_deadline, created_at, updated_at`

func (r *ReturnRepository) Create(ctx context.Context, ret *domain.ReturnRequest) error {
	q := querier(ctx, r.db)

	err := q.QueryRow(ctx, `
		INSERT INTO returns (id, order_id, user_id, reason, status, refund_amount, images, return_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`,
		ret.ID, ret.OrderID, ret.UserID, ret.Reason, ret.Status,
		ret.RefundAmount, ret.Images, ret.ReturnDeadline).
		Scan(&ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		return err
	}

	for i := range ret.Items {
		it := &ret.Items[i]
		it.ReturnID = ret.ID
		_, err := q.Exec(ctx, `
			INSERT INTO return_items (id, return_id, product_id, quantity, size, reason)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.ReturnID, it.ProductID, it.Quantity, it.Size, it.Reason)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanReturn(row pgx.Row) (*domain.ReturnRequest, error) {
	var ret domain.ReturnRequest
	err := row.Scan(&ret.ID, &ret.OrderID, &ret.UserID, &ret.Reason, &ret.Status,
		&ret.RefundAmount, &ret.AdminNotes, &ret.Images, &ret.ReturnDeadline,
		&ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

func (r *ReturnRepository) GetByID(ctx context.Context, id string) (*domain.ReturnRequest, error) {
	q := querier(ctx, r.db)
	ret, err := scanReturn(q.QueryRow(ctx, `SELECT `+returnColumns+` FROM returns WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*domain.ReturnRequest{ret}); err != nil {
		return nil, err
	}
	return ret, nil
}

func (r *ReturnRepository) GetByUserID(ctx context.Context, userID string) ([]domain.ReturnRequest, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+returnColumns+`
		FROM returns
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *ReturnRepository) GetAll(ctx context.Context) ([]domain.ReturnRequest, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT `+returnColumns+`
		FROM returns
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return r.collect(ctx, rows)
}

func (r *ReturnRepository) collect(ctx context.Context, rows pgx.Rows) ([]domain.ReturnRequest, error) {
	defer rows.Close()
	returns := []domain.ReturnRequest{}
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			return nil, err
		}
		returns = append(returns, *ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*domain.ReturnRequest, len(returns))
	for i := range returns {
		refs[i] = &returns[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return returns, nil
}

func (r *ReturnRepository) loadItems(ctx context.Context, returns []*domain.ReturnRequest) error {
	if len(returns) == 0 {
		return nil
	}
	q := querier(ctx, r.db)

	ids := make([]string, len(returns))
	byID := make(map[string]*domain.ReturnRequest, len(returns))
	for i, ret := range returns {
		ids[i] = ret.ID
		byID[ret.ID] = ret
		ret.Items = []domain.ReturnItem{}
	}

	rows, err := q.Query(ctx, `
		SELECT ri.id, ri.return_id, ri.product_id, ri.quantity, ri.size, ri.reason, `+prefixed("p", productColumns)+`
		FROM return_items ri
		JOIN products p ON p.id = ri.product_id
		WHERE ri.return_id = ANY($1)
		ORDER BY ri.id`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.ReturnItem
		p := &it.Product
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.Size, &it.Reason,
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Image, &p.Category,
			&p.Sizes, &p.Colors, &p.Featured, &p.IsNew, &p.Stock, &p.ReturnAvailable,
			&p.ReturnPeriodDays, &p.Rating, &p.RatingCount, &p.RatingSum,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		if ret, ok := byID[it.ReturnID]; ok {
			ret.Items = append(ret.Items, it)
		}
	}
	return rows.Err()
}

func (r *ReturnRepository) UpdateStatus(ctx context.Context, id, status, adminNotes string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE returns
		SET status = $2,
			admin_notes = CASE WHEN $3 <> '' THEN $3 ELSE admin_notes END,
			updated_at = now()
		WHERE id = $1`, id, status, adminNotes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
