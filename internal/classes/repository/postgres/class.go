package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/rindi230/angelsfitnesgym/internal/classes/domain"
	"github.com/rindi230/angelsfitnesgym/pkg/database"
	apperrors "github.com/rindi230/angelsfitnesgym/pkg/errors"
)

// ClassRepository implements repository.ClassRepository using PostgreSQL.
type ClassRepository struct {
	pool database.DBTX
}

// NewClassRepository creates a new PostgreSQL-backed class repository.
func NewClassRepository(pool database.DBTX) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, name, description, trainer, schedule, duration_min, difficulty, max_capacity, available_slots, image_url, is_active, created_at`

// ListActive returns all active classes ordered by name.
func (r *ClassRepository) ListActive(ctx context.Context) ([]domain.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE is_active = true
		ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}
	defer rows.Close()

	var classes []domain.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate classes: %w", err)
	}

	return classes, nil
}

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*domain.Class, error) {
	query := `
		SELECT ` + classColumns + `
		FROM classes
		WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	c, err := scanClass(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("class", strconv.Itoa(id))
		}
		return nil, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClass(row rowScanner) (*domain.Class, error) {
	var c domain.Class
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Trainer,
		&c.Schedule,
		&c.DurationMin,
		&c.Difficulty,
		&c.MaxCapacity,
		&c.AvailableSlots,
		&c.ImageURL,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan class: %w", err)
	}
	return &c, nil
}
