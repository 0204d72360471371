package products

import (
	"context"
	"fmt"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	pkgerrors "github.com/carzuiliam/shopping-api/pkg/errors"
	"github.com/carzuiliam/shopping-api/pkg/sqlspec"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	productsTable    = sqlspec.Table{Name: "products", Key: "product_id"}
	brandsTable      = sqlspec.Table{Name: "brands", Key: "brand_id"}
	departmentsTable = sqlspec.Table{Name: "departments", Key: "department_id"}
)

// Repository exposes product reads and the stock write used by the cart
// engine. Brand and department references are attached only by the joined
// read paths.
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

type productRow struct {
	ProductID      int64           `gorm:"column:product_id"`
	Code           string          `gorm:"column:code"`
	Name           string          `gorm:"column:name"`
	Price          decimal.Decimal `gorm:"column:price"`
	Stock          int             `gorm:"column:stock"`
	BrandID        *int64          `gorm:"column:brand_id"`
	DepartmentID   *int64          `gorm:"column:department_id"`
	BrandName      *string         `gorm:"column:brand_name"`
	DepartmentName *string         `gorm:"column:department_name"`
}

func (row productRow) toModel() models.Product {
	product := models.Product{
		ProductID:    row.ProductID,
		Code:         row.Code,
		Name:         row.Name,
		Price:        row.Price,
		Stock:        row.Stock,
		BrandID:      row.BrandID,
		DepartmentID: row.DepartmentID,
	}
	if row.BrandID != nil && row.BrandName != nil {
		product.Brand = &models.Brand{BrandID: *row.BrandID, Name: *row.BrandName}
	}
	if row.DepartmentID != nil && row.DepartmentName != nil {
		product.Department = &models.Department{DepartmentID: *row.DepartmentID, Name: *row.DepartmentName}
	}
	return product
}

func joinedSpec() sqlspec.Spec {
	return sqlspec.For(productsTable).
		Join(brandsTable, sqlspec.JoinOptional).
		Join(departmentsTable, sqlspec.JoinOptional)
}

// List returns all products with their brand and department attached when
// present.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	stmt, err := joinedSpec().SelectJoined()
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// GetByID returns one product with joined references, or
// gorm.ErrRecordNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	stmt, err := joinedSpec().Where("product_id", id).SelectJoined()
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	product := rows[0].toModel()
	return &product, nil
}

// UpdateStock persists an absolute stock count for the product. Exactly one
// row must be affected.
func (r *Repository) UpdateStock(ctx context.Context, productID int64, stock int) error {
	stmt, err := sqlspec.For(productsTable).
		Set("stock", stock).
		Where("product_id", productID).
		Update()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("update product stock", res.RowsAffected)
	}
	return nil
}

func persistFailure(op string, affected int64) error {
	return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("%s affected %d rows", op, affected))
}
