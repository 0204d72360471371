package cart

import (
	pkgerrors "github.com/carzuiliam/shopping-api/pkg/errors"
)

// Every business rule the engine can reject is a distinct sentinel so
// handlers and tests can match with errors.Is. The attached code drives the
// HTTP mapping.
var (
	ErrCartNotFound    = pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	ErrProductNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	ErrLineNotFound    = pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	ErrInvalidCoupon   = pkgerrors.New(pkgerrors.CodeNotFound, "coupon code is not valid")

	ErrDuplicateLine        = pkgerrors.New(pkgerrors.CodeConflict, "product is already in the cart")
	ErrCouponAlreadyApplied = pkgerrors.New(pkgerrors.CodeConflict, "a coupon is already applied to the cart")

	ErrOutOfStock        = pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock")
	ErrInsufficientStock = pkgerrors.New(pkgerrors.CodeStateConflict, "not enough stock for the requested quantity")
	ErrCartEmpty         = pkgerrors.New(pkgerrors.CodeStateConflict, "cart has no products")
	ErrNoCouponApplied   = pkgerrors.New(pkgerrors.CodeStateConflict, "cart has no coupon applied")

	ErrInvalidQuantity = pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero")
)
