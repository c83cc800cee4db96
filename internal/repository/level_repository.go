package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/gd-level-archive/internal/models"
)

// LevelRepository runs read-only queries against the levels catalog table.
type LevelRepository struct {
	db       *sqlx.DB
	position string
}

// NewLevelRepository constructs a LevelRepository for the driver behind db.
func NewLevelRepository(db *sqlx.DB) *LevelRepository {
	return &LevelRepository{db: db, position: positionFunc(db.DriverName())}
}

// List returns one page of levels matching the filter in the requested order.
func (r *LevelRepository) List(ctx context.Context, filter models.LevelFilter) ([]models.LevelRecord, error) {
	where := buildLevelWhere(filter, r.position)
	args := append([]interface{}{}, where.args...)

	query := "SELECT " + selectLevelColumns() + " FROM levels" + where.where() +
		buildLevelOrderBy(filter.SortBy, filter.SortOrder) + " LIMIT ? OFFSET ?"
	args = append(args, filter.PageSize, filter.Offset())

	levels := make([]models.LevelRecord, 0, filter.PageSize)
	if err := r.db.SelectContext(ctx, &levels, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

// Count returns the number of levels matching the filter, ignoring order and paging.
func (r *LevelRepository) Count(ctx context.Context, filter models.LevelFilter) (int, error) {
	where := buildLevelWhere(filter, r.position)
	query := "SELECT COUNT(*) FROM levels" + where.where()

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(query), where.args...); err != nil {
		return 0, fmt.Errorf("count levels: %w", err)
	}
	return total, nil
}

// FindByID fetches a single level; sql.ErrNoRows is returned unwrapped when absent.
func (r *LevelRepository) FindByID(ctx context.Context, id int64) (*models.LevelRecord, error) {
	query := "SELECT " + selectLevelColumns() + " FROM levels WHERE ID = ?"
	var level models.LevelRecord
	if err := r.db.GetContext(ctx, &level, r.db.Rebind(query), id); err != nil {
		return nil, err
	}
	return &level, nil
}
