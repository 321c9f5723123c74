package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	repoMocks "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/ecommerce-checkout/internal/services"
	svcMocks "github.com/aaravmahajanofficial/ecommerce-checkout/internal/services/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func assertAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %T", err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}

type cartFixture struct {
	carts    *repoMocks.MockCartRepository
	products *repoMocks.MockProductRepository
	coupons  *svcMocks.MockCouponService
	svc      service.CartService
}

func newCartFixture(t *testing.T) *cartFixture {
	f := &cartFixture{
		carts:    repoMocks.NewMockCartRepository(t),
		products: repoMocks.NewMockProductRepository(t),
		coupons:  svcMocks.NewMockCouponService(t),
	}
	f.svc = service.NewCartService(f.carts, f.products, f.coupons)

	return f
}

func TestCartService_GetCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newCartFixture(t)
		expected := &models.Cart{ID: uuid.New(), UserID: userID}
		f.carts.On("GetCartByUserID", ctx, userID).Return(expected, nil).Once()

		cart, err := f.svc.GetCart(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, expected, cart)
	})

	t.Run("Not found", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		cart, err := f.svc.GetCart(ctx, userID)

		assert.Nil(t, cart)
		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Database error", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, errors.New("connection reset")).Once()

		_, err := f.svc.GetCart(ctx, userID)

		assertAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), Title: "Mug", Price: 20, Quantity: 5}

	t.Run("Creates cart on first add", func(t *testing.T) {
		f := newCartFixture(t)
		f.products.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		f.carts.On("CreateCart", ctx, mock.MatchedBy(func(c *models.Cart) bool {
			return c.UserID == userID && len(c.Items) == 1 && c.TotalCartPrice == 20
		})).Return(nil).Once()

		cart, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Color: "red"})

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.Items[0].Quantity)
		assert.Equal(t, "red", cart.Items[0].Color)
		assert.Equal(t, "Mug", cart.Items[0].Product.Title)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
	})

	t.Run("Merges same variant", func(t *testing.T) {
		f := newCartFixture(t)
		existing := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartItem{
				{ID: uuid.New(), ProductID: product.ID, Quantity: 2, Color: "red", Price: 20},
			},
			TotalCartPrice: 40,
		}
		f.products.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()
		f.carts.On("UpdateCart", ctx, existing).Return(nil).Once()

		cart, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Color: "red"})

		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 3, cart.Items[0].Quantity)
		assert.InDelta(t, 60.0, cart.TotalCartPrice, 0.001)
	})

	t.Run("Different size adds a new line", func(t *testing.T) {
		f := newCartFixture(t)
		existing := &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartItem{
				{ID: uuid.New(), ProductID: product.ID, Quantity: 1, Size: "M", Price: 20},
			},
			TotalCartPrice: 20,
		}
		f.products.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()
		f.carts.On("UpdateCart", ctx, existing).Return(nil).Once()

		cart, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID, Size: "L"})

		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
		assert.InDelta(t, 40.0, cart.TotalCartPrice, 0.001)
	})

	t.Run("Adding resets an applied coupon", func(t *testing.T) {
		f := newCartFixture(t)
		existing := &models.Cart{
			ID:                      uuid.New(),
			UserID:                  userID,
			Items:                   []models.CartItem{{ID: uuid.New(), ProductID: product.ID, Quantity: 1, Price: 20}},
			TotalCartPrice:          20,
			TotalPriceAfterDiscount: ptr(18),
		}
		f.products.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(existing, nil).Once()
		f.carts.On("UpdateCart", ctx, existing).Return(nil).Once()

		cart, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID})

		require.NoError(t, err)
		assert.Nil(t, cart.TotalPriceAfterDiscount)
		assert.InDelta(t, 40.0, cart.TotalCartPrice, 0.001)
	})

	t.Run("Concurrent create falls back to update", func(t *testing.T) {
		f := newCartFixture(t)
		winner := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{}}
		f.products.On("GetProductByID", ctx, product.ID).Return(product, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()
		f.carts.On("CreateCart", ctx, mock.AnythingOfType("*models.Cart")).Return(repository.ErrDuplicate).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(winner, nil).Once()
		f.carts.On("UpdateCart", ctx, winner).Return(nil).Once()

		cart, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID})

		require.NoError(t, err)
		assert.Equal(t, winner.ID, cart.ID)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("Product not found", func(t *testing.T) {
		f := newCartFixture(t)
		f.products.On("GetProductByID", ctx, product.ID).Return(nil, sql.ErrNoRows).Once()

		_, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID})

		assertAppError(t, err, appErrors.ErrCodeNotFound)
		f.carts.AssertNotCalled(t, "GetCartByUserID", mock.Anything, mock.Anything)
	})

	t.Run("Out of stock", func(t *testing.T) {
		f := newCartFixture(t)
		soldOut := &models.Product{ID: product.ID, Title: "Mug", Price: 20, Quantity: 0}
		f.products.On("GetProductByID", ctx, product.ID).Return(soldOut, nil).Once()

		_, err := f.svc.AddItem(ctx, userID, &models.AddItemRequest{ProductID: product.ID})

		assertAppError(t, err, appErrors.ErrCodeOutOfStock)
	})
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	itemID := uuid.New()

	newCart := func() *models.Cart {
		return &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Items: []models.CartItem{
				{ID: itemID, ProductID: uuid.New(), Quantity: 1, Price: 10, PriceAfterDiscount: ptr(8)},
			},
			TotalCartPrice:          10,
			TotalPriceAfterDiscount: ptr(8),
		}
	}

	t.Run("Success", func(t *testing.T) {
		f := newCartFixture(t)
		cart := newCart()
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(nil).Once()

		updated, err := f.svc.UpdateItemQuantity(ctx, userID, itemID, 3)

		require.NoError(t, err)
		assert.Equal(t, 3, updated.Items[0].Quantity)
		assert.InDelta(t, 30.0, updated.TotalCartPrice, 0.001)
		require.NotNil(t, updated.TotalPriceAfterDiscount)
		assert.InDelta(t, 24.0, *updated.TotalPriceAfterDiscount, 0.001)
	})

	t.Run("Item not in cart", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("GetCartByUserID", ctx, userID).Return(newCart(), nil).Once()

		_, err := f.svc.UpdateItemQuantity(ctx, userID, uuid.New(), 2)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Quantity below one", func(t *testing.T) {
		f := newCartFixture(t)

		_, err := f.svc.UpdateItemQuantity(ctx, userID, itemID, 0)

		assertAppError(t, err, appErrors.ErrCodeBadRequest)
	})

	t.Run("No cart", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		_, err := f.svc.UpdateItemQuantity(ctx, userID, itemID, 2)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("Cart checked out before the write", func(t *testing.T) {
		f := newCartFixture(t)
		cart := newCart()
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(sql.ErrNoRows).Once()

		_, err := f.svc.UpdateItemQuantity(ctx, userID, itemID, 2)

		appErr := assertAppError(t, err, appErrors.ErrCodeNotFound)
		assert.ErrorIs(t, appErr, sql.ErrNoRows)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	keep := models.CartItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: 2, Price: 5}
	drop := models.CartItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, Price: 15}

	t.Run("Success", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{keep, drop}, TotalCartPrice: 25}
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(nil).Once()

		updated, err := f.svc.RemoveItem(ctx, userID, drop.ID)

		require.NoError(t, err)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, keep.ID, updated.Items[0].ID)
		assert.InDelta(t, 10.0, updated.TotalCartPrice, 0.001)
	})

	t.Run("Removing last item leaves an empty cart", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{drop}, TotalCartPrice: 15}
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(nil).Once()

		updated, err := f.svc.RemoveItem(ctx, userID, drop.ID)

		require.NoError(t, err)
		assert.Empty(t, updated.Items)
		assert.Zero(t, updated.TotalCartPrice)
	})

	t.Run("Update fails", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{keep, drop}}
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(errors.New("db down")).Once()

		_, err := f.svc.RemoveItem(ctx, userID, drop.ID)

		assertAppError(t, err, appErrors.ErrCodeDatabaseError)
	})

	t.Run("Cart checked out before the write", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{keep, drop}}
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(sql.ErrNoRows).Once()

		_, err := f.svc.RemoveItem(ctx, userID, drop.ID)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("DeleteCartByUserID", ctx, userID).Return(nil).Once()

		require.NoError(t, f.svc.ClearCart(ctx, userID))
	})

	t.Run("No cart", func(t *testing.T) {
		f := newCartFixture(t)
		f.carts.On("DeleteCartByUserID", ctx, userID).Return(sql.ErrNoRows).Once()

		assertAppError(t, f.svc.ClearCart(ctx, userID), appErrors.ErrCodeNotFound)
	})
}

func TestCartService_ApplyCoupon(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	coupon := &models.Coupon{ID: uuid.New(), Name: "SAVE10", Discount: 10}

	t.Run("Discounts the cart total", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{
			ID:             uuid.New(),
			UserID:         userID,
			Items:          []models.CartItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, Price: 50}},
			TotalCartPrice: 50,
		}
		f.coupons.On("Resolve", ctx, "SAVE10").Return(coupon, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(nil).Once()

		updated, err := f.svc.ApplyCoupon(ctx, userID, "SAVE10")

		require.NoError(t, err)
		require.NotNil(t, updated.TotalPriceAfterDiscount)
		assert.InDelta(t, 45.0, *updated.TotalPriceAfterDiscount, 0.001)
		assert.InDelta(t, 50.0, updated.TotalCartPrice, 0.001)
	})

	t.Run("Second coupon compounds", func(t *testing.T) {
		f := newCartFixture(t)
		cart := &models.Cart{
			ID:                      uuid.New(),
			UserID:                  userID,
			Items:                   []models.CartItem{{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, Price: 50}},
			TotalCartPrice:          50,
			TotalPriceAfterDiscount: ptr(45),
		}
		f.coupons.On("Resolve", ctx, "SAVE10").Return(coupon, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(cart, nil).Once()
		f.carts.On("UpdateCart", ctx, cart).Return(nil).Once()

		updated, err := f.svc.ApplyCoupon(ctx, userID, "SAVE10")

		require.NoError(t, err)
		assert.InDelta(t, 40.5, *updated.TotalPriceAfterDiscount, 0.001)
	})

	t.Run("Invalid coupon leaves cart untouched", func(t *testing.T) {
		f := newCartFixture(t)
		f.coupons.On("Resolve", ctx, "NOPE").Return(nil, appErrors.InvalidCouponError("Coupon is invalid or expired")).Once()

		_, err := f.svc.ApplyCoupon(ctx, userID, "NOPE")

		assertAppError(t, err, appErrors.ErrCodeInvalidCoupon)
		f.carts.AssertNotCalled(t, "GetCartByUserID", mock.Anything, mock.Anything)
		f.carts.AssertNotCalled(t, "UpdateCart", mock.Anything, mock.Anything)
	})

	t.Run("No cart", func(t *testing.T) {
		f := newCartFixture(t)
		f.coupons.On("Resolve", ctx, "SAVE10").Return(coupon, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(nil, sql.ErrNoRows).Once()

		_, err := f.svc.ApplyCoupon(ctx, userID, "SAVE10")

		appErr := assertAppError(t, err, appErrors.ErrCodeBadRequest)
		assert.Equal(t, "No items in the cart", appErr.Message)
	})

	t.Run("Empty cart", func(t *testing.T) {
		f := newCartFixture(t)
		f.coupons.On("Resolve", ctx, "SAVE10").Return(coupon, nil).Once()
		f.carts.On("GetCartByUserID", ctx, userID).Return(&models.Cart{ID: uuid.New(), UserID: userID, Items: []models.CartItem{}}, nil).Once()

		_, err := f.svc.ApplyCoupon(ctx, userID, "SAVE10")

		assertAppError(t, err, appErrors.ErrCodeBadRequest)
	})
}
