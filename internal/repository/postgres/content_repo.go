package postgres

import (
	"context"
	"errors"

	"velora-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type HeroSlideRepository struct {
	db *pgxpool.Pool
}

func NewHeroSlideRepository(db *pgxpool.Pool) domain.HeroSlideRepository {
	return &HeroSlideRepository{db: db}
}

const slideColumns = `id, title, subtitle, description, image, button_text, button_link,
	secondary_button_text, secondary_button_link, is_active, position,
	background_color, text_color, overlay_opacity, created_at, updated_at`

func scanSlide(row pgx.Row) (*domain.HeroSlide, error) {
	var s domain.HeroSlide
	err := row.Scan(&s.ID, &s.Title, &s.Subtitle, &s.Description, &s.Image,
		&s.ButtonText, &s.ButtonLink, &s.SecondaryButtonText, &s.SecondaryButtonLink,
		&s.IsActive, &s.Position, &s.BackgroundColor, &s.TextColor, &s.OverlayOpacity,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *HeroSlideRepository) slides(ctx context.Context, query string, args ...any) ([]domain.HeroSlide, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slides := []domain.HeroSlide{}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, *s)
	}
	return slides, rows.Err()
}

func (r *HeroSlideRepository) GetActive(ctx context.Context) ([]domain.HeroSlide, error) {
	return r.slides(ctx, `
		SELECT `+slideColumns+`
		FROM hero_slides
		WHERE is_active
		ORDER BY position ASC, created_at ASC`)
}

func (r *HeroSlideRepository) GetAll(ctx context.Context) ([]domain.HeroSlide, error) {
	return r.slides(ctx, `
		SELECT `+slideColumns+`
		FROM hero_slides
		ORDER BY position ASC, created_at ASC`)
}

func (r *HeroSlideRepository) GetByID(ctx context.Context, id string) (*domain.HeroSlide, error) {
	q := querier(ctx, r.db)
	return scanSlide(q.QueryRow(ctx, `SELECT `+slideColumns+` FROM hero_slides WHERE id = $1`, id))
}

func (r *HeroSlideRepository) Create(ctx context.Context, slide *domain.HeroSlide) error {
	q := querier(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO hero_slides (id, title, subtitle, description, image, button_text, button_link,
			secondary_button_text, secondary_button_link, is_active, position,
			background_color, text_color, overlay_opacity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at, updated_at`,
		slide.ID, slide.Title, slide.Subtitle, slide.Description, slide.Image,
		slide.ButtonText, slide.ButtonLink, slide.SecondaryButtonText, slide.SecondaryButtonLink,
		slide.IsActive, slide.Position, slide.BackgroundColor, slide.TextColor, slide.OverlayOpacity).
		Scan(&slide.CreatedAt, &slide.UpdatedAt)
}

func (r *HeroSlideRepository) Update(ctx context.Context, slide *domain.HeroSlide) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE hero_slides
		SET title = $2, subtitle = $3, description = $4, image = $5, button_text = $6,
			button_link = $7, secondary_button_text = $8, secondary_button_link = $9,
			is_active = $10, position = $11, background_color = $12, text_color = $13,
			overlay_opacity = $14, updated_at = now()
		WHERE id = $1`,
		slide.ID, slide.Title, slide.Subtitle, slide.Description, slide.Image,
		slide.ButtonText, slide.ButtonLink, slide.SecondaryButtonText, slide.SecondaryButtonLink,
		slide.IsActive, slide.Position, slide.BackgroundColor, slide.TextColor, slide.OverlayOpacity)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HeroSlideRepository) Delete(ctx context.Context, id string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM hero_slides WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HeroSlideRepository) UpdatePosition(ctx context.Context, id string, position int) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `
		UPDATE hero_slides SET position = $2, updated_at = now() WHERE id = $1`, id, position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, msg *domain.ContactMessage) error {
	q := querier(ctx, r.db)
	return q.QueryRow(ctx, `
		INSERT INTO contact_messages (id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message).Scan(&msg.CreatedAt)
}

func (r *ContactRepository) GetAll(ctx context.Context) ([]domain.ContactMessage, error) {
	q := querier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.ContactMessage{}
	for rows.Next() {
		var m domain.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *ContactRepository) GetByID(ctx context.Context, id string) (*domain.ContactMessage, error) {
	q := querier(ctx, r.db)
	var m domain.ContactMessage
	err := q.QueryRow(ctx, `
		SELECT id, name, email, subject, message, created_at
		FROM contact_messages WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	q := querier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
