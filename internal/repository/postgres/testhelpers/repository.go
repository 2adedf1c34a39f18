package testhelpers

import (
	"github.com/accessibility-map/internal/domain/repository"
	"github.com/accessibility-map/internal/repository/postgres"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// NewLocalPointRepositoryForTest creates a local point repository with test database and logger
func NewLocalPointRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.LocalPointRepository {
	return postgres.NewLocalPointRepository(postgres.NewDBForTest(db, logger))
}
