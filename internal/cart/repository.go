package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/carzuiliam/shopping-api/pkg/db/models"
	pkgerrors "github.com/carzuiliam/shopping-api/pkg/errors"
	"github.com/carzuiliam/shopping-api/pkg/sqlspec"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	cartsTable     = sqlspec.Table{Name: "carts", Key: "cart_id"}
	cartLinesTable = sqlspec.Table{Name: "cart_lines", Key: "line_id"}
	usersTable     = sqlspec.Table{Name: "users", Key: "user_id"}
	couponsTable   = sqlspec.Table{Name: "coupons", Key: "coupon_id"}
	productsTable  = sqlspec.Table{Name: "products", Key: "product_id"}
)

// Repository persists carts and their lines. Every read that returns a cart
// hydrates its owner and, when present, its coupon; lines are loaded
// separately with their product attached.
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

type cartRow struct {
	CartID    int64           `gorm:"column:cart_id"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal"`
	Discount  decimal.Decimal `gorm:"column:discount"`
	Shipping  decimal.Decimal `gorm:"column:shipping"`
	Total     decimal.Decimal `gorm:"column:total"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UserID    int64           `gorm:"column:user_id"`
	CouponID  *int64          `gorm:"column:coupon_id"`

	Username *string `gorm:"column:username"`
	Name     *string `gorm:"column:name"`

	Code        *string             `gorm:"column:code"`
	Description *string             `gorm:"column:description"`
	Rate        decimal.NullDecimal `gorm:"column:rate"`
}

func (row cartRow) toModel() models.Cart {
	c := models.Cart{
		CartID:    row.CartID,
		Subtotal:  row.Subtotal,
		Discount:  row.Discount,
		Shipping:  row.Shipping,
		Total:     row.Total,
		CreatedAt: row.CreatedAt,
		UserID:    row.UserID,
		CouponID:  row.CouponID,
		Lines:     []models.CartLine{},
	}
	if row.Username != nil && row.Name != nil {
		c.User = &models.User{UserID: row.UserID, Username: *row.Username, Name: *row.Name}
	}
	if row.CouponID != nil && row.Code != nil {
		coupon := &models.Coupon{CouponID: *row.CouponID, Code: *row.Code}
		if row.Description != nil {
			coupon.Description = *row.Description
		}
		if row.Rate.Valid {
			coupon.Rate = row.Rate.Decimal
		}
		c.Coupon = coupon
	}
	return c
}

func cartSpec() sqlspec.Spec {
	return sqlspec.For(cartsTable).
		Join(usersTable, sqlspec.JoinFull).
		Join(couponsTable, sqlspec.JoinOptional)
}

func (r *Repository) findOne(ctx context.Context, spec sqlspec.Spec) (*models.Cart, error) {
	stmt, err := spec.SelectJoined()
	if err != nil {
		return nil, err
	}
	var rows []cartRow
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	c := rows[0].toModel()
	return &c, nil
}

// FindByID returns the cart with the given id, or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, cartID int64) (*models.Cart, error) {
	return r.findOne(ctx, cartSpec().Where("cart_id", cartID))
}

// FindByUser returns the user's cart, or gorm.ErrRecordNotFound. A user has
// at most one cart.
func (r *Repository) FindByUser(ctx context.Context, userID int64) (*models.Cart, error) {
	return r.findOne(ctx, cartSpec().Where("user_id", userID))
}

// Create inserts an empty cart for the user with all totals at zero.
func (r *Repository) Create(ctx context.Context, userID int64, createdAt time.Time) error {
	stmt, err := sqlspec.For(cartsTable).
		Set("subtotal", decimal.Zero).
		Set("discount", decimal.Zero).
		Set("shipping", decimal.Zero).
		Set("total", decimal.Zero).
		Set("created_at", createdAt).
		Set("user_id", userID).
		Set("coupon_id", nil).
		Insert()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("create cart", res.RowsAffected)
	}
	return nil
}

type lineRow struct {
	LineID    int64           `gorm:"column:line_id"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price"`
	Quantity  int             `gorm:"column:quantity"`
	Total     decimal.Decimal `gorm:"column:total"`
	AddedAt   time.Time       `gorm:"column:added_at"`
	CartID    int64           `gorm:"column:cart_id"`
	ProductID int64           `gorm:"column:product_id"`

	Code         *string             `gorm:"column:code"`
	Name         *string             `gorm:"column:name"`
	Price        decimal.NullDecimal `gorm:"column:price"`
	Stock        *int                `gorm:"column:stock"`
	BrandID      *int64              `gorm:"column:brand_id"`
	DepartmentID *int64              `gorm:"column:department_id"`
}

func (row lineRow) toModel() models.CartLine {
	line := models.CartLine{
		LineID:    row.LineID,
		UnitPrice: row.UnitPrice,
		Quantity:  row.Quantity,
		Total:     row.Total,
		AddedAt:   row.AddedAt,
		CartID:    row.CartID,
		ProductID: row.ProductID,
	}
	if row.Code != nil && row.Name != nil {
		product := &models.Product{
			ProductID:    row.ProductID,
			Code:         *row.Code,
			Name:         *row.Name,
			BrandID:      row.BrandID,
			DepartmentID: row.DepartmentID,
		}
		if row.Price.Valid {
			product.Price = row.Price.Decimal
		}
		if row.Stock != nil {
			product.Stock = *row.Stock
		}
		line.Product = product
	}
	return line
}

// ListLines returns the cart's lines with their product attached, ordered by
// insertion.
func (r *Repository) ListLines(ctx context.Context, cartID int64) ([]models.CartLine, error) {
	stmt, err := sqlspec.For(cartLinesTable).
		Join(productsTable, sqlspec.JoinFull).
		Where("cart_id", cartID).
		OrderBy("line_id").
		SelectJoined()
	if err != nil {
		return nil, err
	}
	var rows []lineRow
	if err := r.db.WithContext(ctx).Raw(stmt.SQL, stmt.Args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	lines := make([]models.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, row.toModel())
	}
	return lines, nil
}

// InsertLine adds a product to a cart with its price frozen at unitPrice.
func (r *Repository) InsertLine(ctx context.Context, cartID, productID int64, unitPrice, total decimal.Decimal, quantity int, addedAt time.Time) error {
	stmt, err := sqlspec.For(cartLinesTable).
		Set("unit_price", unitPrice).
		Set("quantity", quantity).
		Set("total", total).
		Set("added_at", addedAt).
		Set("cart_id", cartID).
		Set("product_id", productID).
		Insert()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("insert cart line", res.RowsAffected)
	}
	return nil
}

// UpdateLine rewrites a line's quantity and total.
func (r *Repository) UpdateLine(ctx context.Context, lineID int64, quantity int, total decimal.Decimal) error {
	stmt, err := sqlspec.For(cartLinesTable).
		Set("quantity", quantity).
		Set("total", total).
		Where("line_id", lineID).
		Update()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("update cart line", res.RowsAffected)
	}
	return nil
}

// DeleteLine removes a single line.
func (r *Repository) DeleteLine(ctx context.Context, lineID int64) error {
	stmt, err := sqlspec.For(cartLinesTable).Where("line_id", lineID).Delete()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("delete cart line", res.RowsAffected)
	}
	return nil
}

// DeleteLines removes every line of the cart and returns how many rows went
// away.
func (r *Repository) DeleteLines(ctx context.Context, cartID int64) (int64, error) {
	stmt, err := sqlspec.For(cartLinesTable).Where("cart_id", cartID).Delete()
	if err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UpdateTotals persists the derived totals and the coupon reference in one
// statement. Exactly one row must be affected.
func (r *Repository) UpdateTotals(ctx context.Context, cartID int64, subtotal, shipping, discount, total decimal.Decimal, couponID *int64) error {
	stmt, err := sqlspec.For(cartsTable).
		Set("subtotal", subtotal).
		Set("shipping", shipping).
		Set("discount", discount).
		Set("total", total).
		Set("coupon_id", couponID).
		Where("cart_id", cartID).
		Update()
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(stmt.SQL, stmt.Args...)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return persistFailure("update cart totals", res.RowsAffected)
	}
	return nil
}

func persistFailure(op string, affected int64) error {
	return pkgerrors.New(pkgerrors.CodeInternal, fmt.Sprintf("%s affected %d rows", op, affected))
}
