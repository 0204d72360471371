package coupons

import (
	"context"
	"strings"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	"github.com/carzuiliam/shopping-api/pkg/sqlspec"
	"gorm.io/gorm"
)

var couponsTable = sqlspec.Table{Name: "coupons", Key: "coupon_id"}

// NormalizeCode canonicalizes a coupon code for comparison and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Repository exposes coupon lookups.
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

// List returns all coupons.
func (r *Repository) List(ctx context.Context) ([]models.Coupon, error) {
	stmt, err := sqlspec.For(couponsTable).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Coupon
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByID returns the coupon with the given id, or gorm.ErrRecordNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Coupon, error) {
	stmt, err := sqlspec.For(couponsTable).Where("coupon_id", id).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Coupon
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// FindByCode looks a coupon up by its normalized code, or returns
// gorm.ErrRecordNotFound. Codes are stored normalized, so the lookup
// normalizes its input the same way.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	stmt, err := sqlspec.For(couponsTable).Where("code", NormalizeCode(code)).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Coupon
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
