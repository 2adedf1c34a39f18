package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/accessibility-map/internal/domain"
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/pkg/errors"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type localPointRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewLocalPointRepository(db *DB) repository.LocalPointRepository {
	return &localPointRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const localPointColumns = `
	id, category, name, description, latitude, longitude,
	is_operational, verified, created_at`

func (r *localPointRepository) GetInBounds(
	ctx context.Context,
	bounds domain.GeoBounds,
	categories []domain.FeatureCategory,
) ([]*domain.LocalPoint, error) {
	query := `
		SELECT ` + localPointColumns + `
		FROM accessibility_points
		WHERE latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		  AND (cardinality($5::text[]) = 0 OR category = ANY($5::text[]))
		ORDER BY created_at DESC
	`

	cats := make([]string, len(categories))
	for i, c := range categories {
		cats[i] = string(c)
	}

	points := make([]*domain.LocalPoint, 0)
	err := r.db.SelectContext(ctx, &points, query,
		bounds.South, bounds.North,
		bounds.West, bounds.East,
		pq.Array(cats),
	)
	if err != nil {
		r.logger.Error("Failed to get local points in bounds",
			zap.String("bounds", bounds.String()),
			zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return points, nil
}

func (r *localPointRepository) GetByID(ctx context.Context, id string) (*domain.LocalPoint, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.ErrPointNotFound
	}

	query := `SELECT ` + localPointColumns + ` FROM accessibility_points WHERE id = $1`

	var point domain.LocalPoint
	err := r.db.GetContext(ctx, &point, query, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.ErrPointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get local point by ID", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &point, nil
}

func (r *localPointRepository) Create(ctx context.Context, point *domain.LocalPoint) error {
	if point.ID == "" {
		point.ID = uuid.NewString()
	}
	if point.CreatedAt.IsZero() {
		point.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO accessibility_points (` + localPointColumns + `)
		VALUES (:id, :category, :name, :description, :latitude, :longitude,
		        :is_operational, :verified, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, point); err != nil {
		r.logger.Error("Failed to create local point", zap.Error(err))
		return errors.ErrDatabaseError
	}

	r.logger.Info("Local point created",
		zap.String("id", point.ID),
		zap.String("category", string(point.Category)))

	return nil
}
