package users

import (
	"context"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	"github.com/carzuiliam/shopping-api/pkg/sqlspec"
	"gorm.io/gorm"
)

var usersTable = sqlspec.Table{Name: "users", Key: "user_id"}

// Repository exposes read-only user lookups.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repository to the provided GORM handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns all users.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	stmt, err := sqlspec.For(usersTable).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.User
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	stmt, err := sqlspec.For(usersTable).Where("user_id", id).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.User
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
