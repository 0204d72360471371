package cart

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/carzuiliam/shopping-api/internal/coupons"
	"github.com/carzuiliam/shopping-api/internal/products"
	"github.com/carzuiliam/shopping-api/internal/users"
	"github.com/carzuiliam/shopping-api/pkg/config"
	"github.com/carzuiliam/shopping-api/pkg/db"
	"github.com/shopspring/decimal"
)

var testSchema = []string{
	`CREATE TABLE users (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE brands (
		brand_id INTEGER PRIMARY KEY AUTOINCREMENT,
		brand_name TEXT NOT NULL
	)`,
	`CREATE TABLE departments (
		department_id INTEGER PRIMARY KEY AUTOINCREMENT,
		department_name TEXT NOT NULL
	)`,
	`CREATE TABLE products (
		product_id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0,
		brand_id INTEGER REFERENCES brands(brand_id),
		department_id INTEGER REFERENCES departments(department_id)
	)`,
	`CREATE TABLE coupons (
		coupon_id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		rate NUMERIC(5,4) NOT NULL
	)`,
	`CREATE TABLE carts (
		cart_id INTEGER PRIMARY KEY AUTOINCREMENT,
		subtotal NUMERIC(10,2) NOT NULL,
		discount NUMERIC(10,2) NOT NULL,
		shipping NUMERIC(10,2) NOT NULL,
		total NUMERIC(10,2) NOT NULL,
		created_at DATETIME NOT NULL,
		user_id INTEGER NOT NULL REFERENCES users(user_id),
		coupon_id INTEGER REFERENCES coupons(coupon_id)
	)`,
	`CREATE TABLE cart_lines (
		line_id INTEGER PRIMARY KEY AUTOINCREMENT,
		unit_price NUMERIC(10,2) NOT NULL,
		quantity INTEGER NOT NULL,
		total NUMERIC(10,2) NOT NULL,
		added_at DATETIME NOT NULL,
		cart_id INTEGER NOT NULL REFERENCES carts(cart_id),
		product_id INTEGER NOT NULL REFERENCES products(product_id)
	)`,
}

type fixture struct {
	client   *db.Client
	svc      Service
	products *products.Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	cfg := config.DBConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "cart.db"),
		MaxOpenConns: 1,
	}
	client, err := db.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	for _, ddl := range testSchema {
		if err := client.Exec(ctx, ddl).Error; err != nil {
			t.Fatalf("creating schema: %v", err)
		}
	}

	conn := client.DB()
	productRepo := products.NewRepository(conn)
	svc, err := NewService(client, NewRepository(conn), productRepo, coupons.NewRepository(conn), users.NewRepository(conn))
	if err != nil {
		t.Fatalf("building cart service: %v", err)
	}
	return &fixture{client: client, svc: svc, products: productRepo}
}

func (f *fixture) seedUser(t *testing.T, username, name string) int64 {
	t.Helper()
	res := f.client.Exec(context.Background(),
		"INSERT INTO users (username, name) VALUES (?, ?)", username, name)
	if res.Error != nil {
		t.Fatalf("seeding user: %v", res.Error)
	}
	return f.lastID(t)
}

func (f *fixture) seedProduct(t *testing.T, code, name, price string, stock int) int64 {
	t.Helper()
	res := f.client.Exec(context.Background(),
		"INSERT INTO products (code, name, price, stock) VALUES (?, ?, ?, ?)",
		code, name, price, stock)
	if res.Error != nil {
		t.Fatalf("seeding product: %v", res.Error)
	}
	return f.lastID(t)
}

func (f *fixture) seedCoupon(t *testing.T, code, rate string) int64 {
	t.Helper()
	res := f.client.Exec(context.Background(),
		"INSERT INTO coupons (code, description, rate) VALUES (?, ?, ?)",
		code, "test coupon", rate)
	if res.Error != nil {
		t.Fatalf("seeding coupon: %v", res.Error)
	}
	return f.lastID(t)
}

func (f *fixture) lastID(t *testing.T) int64 {
	t.Helper()
	var id int64
	if err := f.client.Raw(context.Background(), "SELECT last_insert_rowid()").Scan(&id).Error; err != nil {
		t.Fatalf("reading last insert id: %v", err)
	}
	return id
}

func (f *fixture) newCart(t *testing.T, userID int64) int64 {
	t.Helper()
	c, err := f.svc.ResolveCartForUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolving cart: %v", err)
	}
	return c.CartID
}

func (f *fixture) stockOf(t *testing.T, productID int64) int {
	t.Helper()
	product, err := f.products.GetByID(context.Background(), productID)
	if err != nil {
		t.Fatalf("reading product: %v", err)
	}
	return product.Stock
}

func mustEqual(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

func TestResolveCartForUserCreatesOnce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")

	first, err := f.svc.ResolveCartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if first.UserID != userID {
		t.Fatalf("cart user = %d, want %d", first.UserID, userID)
	}
	if len(first.Lines) != 0 {
		t.Fatalf("new cart has %d lines, want 0", len(first.Lines))
	}
	mustEqual(t, first.Total, "0", "new cart total")
	if first.User == nil || first.User.Username != "ada" {
		t.Fatalf("cart owner not hydrated: %+v", first.User)
	}

	second, err := f.svc.ResolveCartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second.CartID != first.CartID {
		t.Fatalf("resolve created a second cart: %d then %d", first.CartID, second.CartID)
	}
}

func TestResolveCartForUserUnknownUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.ResolveCartForUser(context.Background(), 999)
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("err = %v, want ErrCartNotFound", err)
	}
}

func TestAddProduct(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 3)
	cartID := f.newCart(t, userID)

	c, err := f.svc.AddProduct(ctx, cartID, productID)
	if err != nil {
		t.Fatalf("adding product: %v", err)
	}

	if len(c.Lines) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(c.Lines))
	}
	line := c.Lines[0]
	if line.Quantity != 1 {
		t.Fatalf("line quantity = %d, want 1", line.Quantity)
	}
	mustEqual(t, line.UnitPrice, "19.90", "line unit price")
	mustEqual(t, line.Total, "19.90", "line total")
	if line.Product == nil || line.Product.Code != "KB-01" {
		t.Fatalf("line product not hydrated: %+v", line.Product)
	}

	mustEqual(t, c.Subtotal, "19.90", "subtotal")
	mustEqual(t, c.Shipping, "2.39", "shipping")
	mustEqual(t, c.Discount, "0", "discount")
	mustEqual(t, c.Total, "22.29", "total")

	if got := f.stockOf(t, productID); got != 2 {
		t.Fatalf("stock after add = %d, want 2", got)
	}
}

func TestAddProductDuplicate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 3)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err := f.svc.AddProduct(ctx, cartID, productID)
	if !errors.Is(err, ErrDuplicateLine) {
		t.Fatalf("err = %v, want ErrDuplicateLine", err)
	}
	if got := f.stockOf(t, productID); got != 2 {
		t.Fatalf("stock after rejected add = %d, want 2", got)
	}
}

func TestAddProductOutOfStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 0)
	cartID := f.newCart(t, userID)

	_, err := f.svc.AddProduct(ctx, cartID, productID)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("err = %v, want ErrOutOfStock", err)
	}
}

func TestAddProductUnknown(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	cartID := f.newCart(t, userID)

	_, err := f.svc.AddProduct(ctx, cartID, 999)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
}

func TestAddProductUnknownCart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 3)

	_, err := f.svc.AddProduct(context.Background(), 999, productID)
	if !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("err = %v, want ErrCartNotFound", err)
	}
}

func TestAddProductRollsBackOnWriteFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 3)
	cartID := f.newCart(t, userID)

	// Fail the stock write, which runs after the line insert has landed,
	// so the mutation errors with part of its writes already applied.
	trigger := `CREATE TRIGGER fail_stock_update BEFORE UPDATE ON products
		BEGIN SELECT RAISE(ABORT, 'stock update disabled'); END`
	if err := f.client.Exec(ctx, trigger).Error; err != nil {
		t.Fatalf("creating trigger: %v", err)
	}

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err == nil {
		t.Fatal("add should fail when the stock write fails")
	}

	var lineCount int64
	if err := f.client.Raw(ctx, "SELECT COUNT(*) FROM cart_lines WHERE cart_id = ?", cartID).Scan(&lineCount).Error; err != nil {
		t.Fatalf("counting lines: %v", err)
	}
	if lineCount != 0 {
		t.Fatalf("line insert survived the failed add: %d lines", lineCount)
	}
	if got := f.stockOf(t, productID); got != 3 {
		t.Fatalf("stock after rolled-back add = %d, want 3", got)
	}
}

func TestChangeQuantity(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 10)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	c, err := f.svc.ChangeQuantity(ctx, cartID, productID, 4)
	if err != nil {
		t.Fatalf("changing quantity: %v", err)
	}

	line := c.Lines[0]
	if line.Quantity != 4 {
		t.Fatalf("line quantity = %d, want 4", line.Quantity)
	}
	mustEqual(t, line.Total, "79.60", "line total")
	mustEqual(t, c.Subtotal, "79.60", "subtotal")
	mustEqual(t, c.Shipping, "9.55", "shipping")
	mustEqual(t, c.Total, "89.15", "total")

	if got := f.stockOf(t, productID); got != 6 {
		t.Fatalf("stock after change = %d, want 6", got)
	}
}

func TestChangeQuantityDecreaseReturnsStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 10)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 5); err != nil {
		t.Fatalf("raising quantity: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 2); err != nil {
		t.Fatalf("lowering quantity: %v", err)
	}
	if got := f.stockOf(t, productID); got != 8 {
		t.Fatalf("stock after decrease = %d, want 8", got)
	}
}

func TestChangeQuantityInsufficientStock(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 2)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	_, err := f.svc.ChangeQuantity(ctx, cartID, productID, 4)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("err = %v, want ErrInsufficientStock", err)
	}
	// Rejected change must leave stock and the line untouched.
	if got := f.stockOf(t, productID); got != 1 {
		t.Fatalf("stock after rejected change = %d, want 1", got)
	}
	c, err := f.svc.ResolveCartForUser(ctx, userID)
	if err != nil {
		t.Fatalf("re-reading cart: %v", err)
	}
	if c.Lines[0].Quantity != 1 {
		t.Fatalf("line quantity after rejected change = %d, want 1", c.Lines[0].Quantity)
	}
}

func TestChangeQuantityValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 2)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("quantity 0: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("negative quantity: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 1); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart: err = %v, want ErrCartEmpty", err)
	}

	other := f.seedProduct(t, "MS-01", "Mouse", "9.90", 2)
	if _, err := f.svc.AddProduct(ctx, cartID, other); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 1); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("absent line: err = %v, want ErrLineNotFound", err)
	}
}

func TestRemoveProduct(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 10)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 3); err != nil {
		t.Fatalf("changing quantity: %v", err)
	}

	c, err := f.svc.RemoveProduct(ctx, cartID, productID)
	if err != nil {
		t.Fatalf("removing product: %v", err)
	}
	if len(c.Lines) != 0 {
		t.Fatalf("cart has %d lines after remove, want 0", len(c.Lines))
	}
	mustEqual(t, c.Total, "0", "total after remove")
	if got := f.stockOf(t, productID); got != 10 {
		t.Fatalf("stock after remove = %d, want 10", got)
	}

	if _, err := f.svc.RemoveProduct(ctx, cartID, productID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("remove from empty cart: err = %v, want ErrCartEmpty", err)
	}
}

func TestRemoveAllProducts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	keyboard := f.seedProduct(t, "KB-01", "Keyboard", "19.90", 5)
	mouse := f.seedProduct(t, "MS-01", "Mouse", "9.90", 5)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, keyboard); err != nil {
		t.Fatalf("adding keyboard: %v", err)
	}
	if _, err := f.svc.AddProduct(ctx, cartID, mouse); err != nil {
		t.Fatalf("adding mouse: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, mouse, 3); err != nil {
		t.Fatalf("changing quantity: %v", err)
	}

	c, err := f.svc.RemoveAllProducts(ctx, cartID)
	if err != nil {
		t.Fatalf("clearing cart: %v", err)
	}
	if len(c.Lines) != 0 {
		t.Fatalf("cart has %d lines after clear, want 0", len(c.Lines))
	}
	mustEqual(t, c.Total, "0", "total after clear")
	if got := f.stockOf(t, keyboard); got != 5 {
		t.Fatalf("keyboard stock after clear = %d, want 5", got)
	}
	if got := f.stockOf(t, mouse); got != 5 {
		t.Fatalf("mouse stock after clear = %d, want 5", got)
	}

	if _, err := f.svc.RemoveAllProducts(ctx, cartID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("clear empty cart: err = %v, want ErrCartEmpty", err)
	}
}

func TestApplyAndClearCoupon(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "50.00", 5)
	f.seedCoupon(t, "SAVE10", "0.10")
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	if _, err := f.svc.ChangeQuantity(ctx, cartID, productID, 2); err != nil {
		t.Fatalf("changing quantity: %v", err)
	}

	// Lookup is case-insensitive.
	c, err := f.svc.ApplyCoupon(ctx, cartID, "save10")
	if err != nil {
		t.Fatalf("applying coupon: %v", err)
	}
	if c.Coupon == nil || c.Coupon.Code != "SAVE10" {
		t.Fatalf("coupon not hydrated: %+v", c.Coupon)
	}
	mustEqual(t, c.Subtotal, "100.00", "subtotal")
	mustEqual(t, c.Shipping, "9.00", "shipping")
	mustEqual(t, c.Discount, "10.00", "discount")
	mustEqual(t, c.Total, "99.00", "total")

	if _, err := f.svc.ApplyCoupon(ctx, cartID, "SAVE10"); !errors.Is(err, ErrCouponAlreadyApplied) {
		t.Fatalf("reapply: err = %v, want ErrCouponAlreadyApplied", err)
	}
	if _, err := f.svc.ApplyCoupon(ctx, cartID, "NOPE"); !errors.Is(err, ErrInvalidCoupon) {
		t.Fatalf("unknown code: err = %v, want ErrInvalidCoupon", err)
	}

	c, err = f.svc.ClearCoupon(ctx, cartID)
	if err != nil {
		t.Fatalf("clearing coupon: %v", err)
	}
	if c.CouponID != nil || c.Coupon != nil {
		t.Fatalf("coupon still on cart after clear")
	}
	mustEqual(t, c.Discount, "0", "discount after clear")
	mustEqual(t, c.Total, "109.00", "total after clear")

	if _, err := f.svc.ClearCoupon(ctx, cartID); !errors.Is(err, ErrNoCouponApplied) {
		t.Fatalf("clear without coupon: err = %v, want ErrNoCouponApplied", err)
	}
}

func TestApplyCouponReplacesDifferentCode(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "50.00", 5)
	f.seedCoupon(t, "SAVE10", "0.10")
	f.seedCoupon(t, "SAVE20", "0.20")
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}
	if _, err := f.svc.ApplyCoupon(ctx, cartID, "SAVE10"); err != nil {
		t.Fatalf("applying first coupon: %v", err)
	}
	c, err := f.svc.ApplyCoupon(ctx, cartID, "SAVE20")
	if err != nil {
		t.Fatalf("applying second coupon: %v", err)
	}
	if c.Coupon == nil || c.Coupon.Code != "SAVE20" {
		t.Fatalf("coupon = %+v, want SAVE20", c.Coupon)
	}
	mustEqual(t, c.Discount, "10.00", "discount at 20%")
}

func TestShippingTiers(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	productID := f.seedProduct(t, "KB-01", "Keyboard", "50.00", 20)
	cartID := f.newCart(t, userID)

	if _, err := f.svc.AddProduct(ctx, cartID, productID); err != nil {
		t.Fatalf("adding product: %v", err)
	}

	// 50.00 sits in the 12% tier.
	c, err := f.svc.ChangeQuantity(ctx, cartID, productID, 1)
	if err != nil {
		t.Fatalf("quantity 1: %v", err)
	}
	mustEqual(t, c.Shipping, "6.00", "shipping at 50.00")

	// 150.00 sits in the 9% tier.
	c, err = f.svc.ChangeQuantity(ctx, cartID, productID, 3)
	if err != nil {
		t.Fatalf("quantity 3: %v", err)
	}
	mustEqual(t, c.Shipping, "13.50", "shipping at 150.00")

	// 200.00 ships for free.
	c, err = f.svc.ChangeQuantity(ctx, cartID, productID, 4)
	if err != nil {
		t.Fatalf("quantity 4: %v", err)
	}
	mustEqual(t, c.Shipping, "0", "shipping at 200.00")
}

func TestFreeShippingByLineCount(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	userID := f.seedUser(t, "ada", "Ada Lovelace")
	cartID := f.newCart(t, userID)

	codes := []string{"P-01", "P-02", "P-03", "P-04", "P-05"}
	for i, code := range codes {
		productID := f.seedProduct(t, code, "Item "+code, "1.00", 5)
		c, err := f.svc.AddProduct(ctx, cartID, productID)
		if err != nil {
			t.Fatalf("adding %s: %v", code, err)
		}
		if i < len(codes)-1 {
			continue
		}
		// Five distinct lines ship for free even at a 5.00 subtotal.
		mustEqual(t, c.Subtotal, "5.00", "subtotal")
		mustEqual(t, c.Shipping, "0", "shipping with five lines")
	}
}
