package cart

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/carzuiliam/shopping-api/pkg/config"
	"github.com/carzuiliam/shopping-api/pkg/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Driver:       "sqlite",
		DSN:          filepath.Join(t.TempDir(), "repo.db"),
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	for _, ddl := range testSchema {
		require.NoError(t, client.Exec(context.Background(), ddl).Error)
	}
	return client
}

func TestFindByUserHydratesOwnerAndCoupon(t *testing.T) {
	t.Parallel()
	client := setupCartTestDB(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	require.NoError(t, client.Exec(ctx,
		"INSERT INTO users (username, name) VALUES (?, ?)", "ada", "Ada Lovelace").Error)
	require.NoError(t, client.Exec(ctx,
		"INSERT INTO coupons (code, description, rate) VALUES (?, ?, ?)",
		"SAVE10", "ten percent", "0.10").Error)
	require.NoError(t, repo.Create(ctx, 1, time.Now().UTC()))
	require.NoError(t, repo.UpdateTotals(ctx, 1,
		decimal.RequireFromString("100.00"),
		decimal.RequireFromString("9.00"),
		decimal.RequireFromString("10.00"),
		decimal.RequireFromString("99.00"),
		ptrInt64(1)))

	c, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), c.UserID)
	require.NotNil(t, c.User)
	assert.Equal(t, "ada", c.User.Username)
	require.NotNil(t, c.Coupon)
	assert.Equal(t, "SAVE10", c.Coupon.Code)
	assert.True(t, c.Coupon.Rate.Equal(decimal.RequireFromString("0.10")))
	assert.True(t, c.Total.Equal(decimal.RequireFromString("99.00")))
}

func TestFindByUserWithoutCoupon(t *testing.T) {
	t.Parallel()
	client := setupCartTestDB(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	require.NoError(t, client.Exec(ctx,
		"INSERT INTO users (username, name) VALUES (?, ?)", "ada", "Ada Lovelace").Error)
	require.NoError(t, repo.Create(ctx, 1, time.Now().UTC()))

	c, err := repo.FindByUser(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, c.CouponID)
	assert.Nil(t, c.Coupon)

	_, err = repo.FindByUser(ctx, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLineLifecycle(t *testing.T) {
	t.Parallel()
	client := setupCartTestDB(t)
	ctx := context.Background()
	repo := NewRepository(client.DB())

	require.NoError(t, client.Exec(ctx,
		"INSERT INTO users (username, name) VALUES (?, ?)", "ada", "Ada Lovelace").Error)
	require.NoError(t, client.Exec(ctx,
		"INSERT INTO products (code, name, price, stock) VALUES (?, ?, ?, ?)",
		"KB-01", "Keyboard", "19.90", 3).Error)
	require.NoError(t, repo.Create(ctx, 1, time.Now().UTC()))

	price := decimal.RequireFromString("19.90")
	require.NoError(t, repo.InsertLine(ctx, 1, 1, price, price, 1, time.Now().UTC()))

	lines, err := repo.ListLines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	require.NotNil(t, lines[0].Product)
	assert.Equal(t, "Keyboard", lines[0].Product.Name)

	require.NoError(t, repo.UpdateLine(ctx, lines[0].LineID, 3, decimal.RequireFromString("59.70")))
	lines, err = repo.ListLines(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, lines[0].Total.Equal(decimal.RequireFromString("59.70")))
	assert.True(t, lines[0].UnitPrice.Equal(price), "unit price must stay frozen")

	affected, err := repo.DeleteLines(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	lines, err = repo.ListLines(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// Persist checks reject writes that matched nothing.
	assert.Error(t, repo.UpdateLine(ctx, 999, 1, price))
	assert.Error(t, repo.DeleteLine(ctx, 999))
}

func ptrInt64(v int64) *int64 { return &v }
