package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carzuiliam/shopping-api/internal/coupons"
	"github.com/carzuiliam/shopping-api/internal/pricing"
	"github.com/carzuiliam/shopping-api/internal/products"
	"github.com/carzuiliam/shopping-api/internal/users"
	"github.com/carzuiliam/shopping-api/pkg/db"
	"github.com/carzuiliam/shopping-api/pkg/db/models"
	pkgerrors "github.com/carzuiliam/shopping-api/pkg/errors"
	"gorm.io/gorm"
)

// Service is the cart engine. Every mutation runs inside a single database
// transaction: business rules are checked against rows read in that
// transaction, stock moves together with the line change, and totals are
// recomputed and persisted before commit. On any error the transaction rolls
// back and the cart is untouched.
type Service interface {
	ResolveCartForUser(ctx context.Context, userID int64) (*models.Cart, error)
	AddProduct(ctx context.Context, cartID, productID int64) (*models.Cart, error)
	ChangeQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.Cart, error)
	RemoveProduct(ctx context.Context, cartID, productID int64) (*models.Cart, error)
	RemoveAllProducts(ctx context.Context, cartID int64) (*models.Cart, error)
	ApplyCoupon(ctx context.Context, cartID int64, code string) (*models.Cart, error)
	ClearCoupon(ctx context.Context, cartID int64) (*models.Cart, error)
}

// txRunner is the transaction boundary the engine runs on. *db.Client
// satisfies it.
type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	tx       txRunner
	carts    *Repository
	products *products.Repository
	coupons  *coupons.Repository
	users    *users.Repository
	now      func() time.Time
}

// NewService wires the cart engine to its repositories and transaction
// runner.
func NewService(tx txRunner, carts *Repository, productRepo *products.Repository, couponRepo *coupons.Repository, userRepo *users.Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil || productRepo == nil || couponRepo == nil || userRepo == nil {
		return nil, fmt.Errorf("cart, product, coupon and user repositories required")
	}
	return &service{
		tx:       tx,
		carts:    carts,
		products: productRepo,
		coupons:  couponRepo,
		users:    userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// ResolveCartForUser returns the user's cart, creating an empty one on first
// access.
func (s *service) ResolveCartForUser(ctx context.Context, userID int64) (*models.Cart, error) {
	var out *models.Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.users.WithTx(tx).GetByID(ctx, userID); err != nil {
			// An id that resolves to no user is a cart that does not exist.
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return wrapDB(err, "load user")
		}

		carts := s.carts.WithTx(tx)
		found, err := carts.FindByUser(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := carts.Create(ctx, userID, s.now()); err != nil {
				return wrapDB(err, "create cart")
			}
			found, err = carts.FindByUser(ctx, userID)
		}
		if err != nil {
			return wrapDB(err, "load cart")
		}

		lines, err := carts.ListLines(ctx, found.CartID)
		if err != nil {
			return wrapDB(err, "load cart lines")
		}
		found.Lines = lines
		out = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddProduct puts one unit of the product into the cart, freezing its price
// on the line and reserving one unit of stock.
func (s *service) AddProduct(ctx context.Context, cartID, productID int64) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		for _, line := range c.Lines {
			if line.ProductID == productID {
				return ErrDuplicateLine
			}
		}

		product, err := s.products.WithTx(tx).GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return wrapDB(err, "load product")
		}
		if product.Stock <= 0 {
			return ErrOutOfStock
		}

		carts := s.carts.WithTx(tx)
		total := pricing.LineTotal(product.Price, 1)
		if err := carts.InsertLine(ctx, c.CartID, productID, product.Price, total, 1, s.now()); err != nil {
			// A concurrent add can slip past the in-memory check and
			// land on the unique (cart_id, product_id) index.
			if db.IsUniqueViolation(err, "") {
				return ErrDuplicateLine
			}
			return wrapDB(err, "insert cart line")
		}
		if err := s.products.WithTx(tx).UpdateStock(ctx, productID, product.Stock-1); err != nil {
			return wrapDB(err, "reserve stock")
		}
		return nil
	})
}

// ChangeQuantity rewrites a line's quantity, settling the difference against
// product stock. The line keeps its frozen unit price.
func (s *service) ChangeQuantity(ctx context.Context, cartID, productID int64, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		if len(c.Lines) == 0 {
			return ErrCartEmpty
		}
		line := findLine(c.Lines, productID)
		if line == nil {
			return ErrLineNotFound
		}

		product, err := s.products.WithTx(tx).GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return wrapDB(err, "load product")
		}

		// Stock as if the line were returned first, then the new
		// quantity taken from it.
		fullStock := line.Quantity + product.Stock
		if fullStock < quantity {
			return ErrInsufficientStock
		}

		if err := s.products.WithTx(tx).UpdateStock(ctx, productID, fullStock-quantity); err != nil {
			return wrapDB(err, "settle stock")
		}
		total := pricing.LineTotal(line.UnitPrice, quantity)
		if err := s.carts.WithTx(tx).UpdateLine(ctx, line.LineID, quantity, total); err != nil {
			return wrapDB(err, "update cart line")
		}
		return nil
	})
}

// RemoveProduct drops the product's line and returns its quantity to stock.
func (s *service) RemoveProduct(ctx context.Context, cartID, productID int64) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		if len(c.Lines) == 0 {
			return ErrCartEmpty
		}
		line := findLine(c.Lines, productID)
		if line == nil {
			return ErrLineNotFound
		}

		product, err := s.products.WithTx(tx).GetByID(ctx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return wrapDB(err, "load product")
		}

		if err := s.products.WithTx(tx).UpdateStock(ctx, productID, product.Stock+line.Quantity); err != nil {
			return wrapDB(err, "return stock")
		}
		if err := s.carts.WithTx(tx).DeleteLine(ctx, line.LineID); err != nil {
			return wrapDB(err, "delete cart line")
		}
		return nil
	})
}

// RemoveAllProducts clears every line, returning each one's quantity to its
// product's stock. An applied coupon stays on the cart.
func (s *service) RemoveAllProducts(ctx context.Context, cartID int64) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		if len(c.Lines) == 0 {
			return ErrCartEmpty
		}

		for _, line := range c.Lines {
			product, err := s.products.WithTx(tx).GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return wrapDB(err, "load product")
			}
			if err := s.products.WithTx(tx).UpdateStock(ctx, line.ProductID, product.Stock+line.Quantity); err != nil {
				return wrapDB(err, "return stock")
			}
		}

		affected, err := s.carts.WithTx(tx).DeleteLines(ctx, c.CartID)
		if err != nil {
			return wrapDB(err, "delete cart lines")
		}
		if affected != int64(len(c.Lines)) {
			return pkgerrors.New(pkgerrors.CodeInternal,
				fmt.Sprintf("clearing cart removed %d of %d lines", affected, len(c.Lines)))
		}
		return nil
	})
}

// ApplyCoupon attaches the coupon with the given code to the cart and
// recomputes totals. Reapplying the code already on the cart is rejected;
// a different code replaces the applied coupon.
func (s *service) ApplyCoupon(ctx context.Context, cartID int64, code string) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		normalized := coupons.NormalizeCode(code)
		if c.Coupon != nil && coupons.NormalizeCode(c.Coupon.Code) == normalized {
			return ErrCouponAlreadyApplied
		}

		coupon, err := s.coupons.WithTx(tx).FindByCode(ctx, normalized)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidCoupon
			}
			return wrapDB(err, "load coupon")
		}

		c.Coupon = coupon
		c.CouponID = &coupon.CouponID
		return nil
	})
}

// ClearCoupon detaches the applied coupon and recomputes totals.
func (s *service) ClearCoupon(ctx context.Context, cartID int64) (*models.Cart, error) {
	return s.mutate(ctx, cartID, func(tx *gorm.DB, c *models.Cart) error {
		if c.CouponID == nil {
			return ErrNoCouponApplied
		}
		c.Coupon = nil
		c.CouponID = nil
		return nil
	})
}

// mutate runs one engine operation: load the cart with its lines, apply the
// rule-checked change, reload the lines, recompute totals and persist them.
// The whole sequence shares one transaction.
func (s *service) mutate(ctx context.Context, cartID int64, change func(tx *gorm.DB, c *models.Cart) error) (*models.Cart, error) {
	var out *models.Cart
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		carts := s.carts.WithTx(tx)

		c, err := carts.FindByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartNotFound
			}
			return wrapDB(err, "load cart")
		}
		lines, err := carts.ListLines(ctx, cartID)
		if err != nil {
			return wrapDB(err, "load cart lines")
		}
		c.Lines = lines

		if err := change(tx, c); err != nil {
			return err
		}

		lines, err = carts.ListLines(ctx, cartID)
		if err != nil {
			return wrapDB(err, "reload cart lines")
		}
		c.Lines = lines

		totals := pricing.Compute(c.Lines, c.Coupon)
		if err := carts.UpdateTotals(ctx, cartID, totals.Subtotal, totals.Shipping, totals.Discount, totals.Total, c.CouponID); err != nil {
			return wrapDB(err, "persist cart totals")
		}
		c.Subtotal = totals.Subtotal
		c.Shipping = totals.Shipping
		c.Discount = totals.Discount
		c.Total = totals.Total

		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findLine(lines []models.CartLine, productID int64) *models.CartLine {
	for i := range lines {
		if lines[i].ProductID == productID {
			return &lines[i]
		}
	}
	return nil
}

// wrapDB passes typed errors through and tags everything else as a
// dependency failure.
func wrapDB(err error, msg string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
