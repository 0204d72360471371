package catalog

import (
	"context"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	"github.com/carzuiliam/shopping-api/pkg/sqlspec"
	"gorm.io/gorm"
)

var (
	brandsTable      = sqlspec.Table{Name: "brands", Key: "brand_id"}
	departmentsTable = sqlspec.Table{Name: "departments", Key: "department_id"}
)

// Repository exposes read-only brand and department lookups.
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

// ListBrands returns all brands.
func (r *Repository) ListBrands(ctx context.Context) ([]models.Brand, error) {
	stmt, err := sqlspec.For(brandsTable).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Brand
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBrand returns one brand, or gorm.ErrRecordNotFound.
func (r *Repository) GetBrand(ctx context.Context, id int64) (*models.Brand, error) {
	stmt, err := sqlspec.For(brandsTable).Where("brand_id", id).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Brand
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// ListDepartments returns all departments.
func (r *Repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	stmt, err := sqlspec.For(departmentsTable).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Department
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetDepartment returns one department, or gorm.ErrRecordNotFound.
func (r *Repository) GetDepartment(ctx context.Context, id int64) (*models.Department, error) {
	stmt, err := sqlspec.For(departmentsTable).Where("department_id", id).Select()
	if err != nil {
		return nil, err
	}
	var rows []models.Department
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}
