package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderRowColumns = []string{"id", "user_id", "shipping_address", "shipping_method", "shipping_price", "tax_price",
		"total_order_price", "payment_method_type", "checkout_session_id", "is_paid", "paid_at", "is_delivered",
		"delivered_at", "created_at", "updated_at"}
	orderItemColumns = []string{"id", "order_id", "product_id", "quantity", "color", "size", "price", "price_after_discount"}

	orderItemsSQL = regexp.QuoteMeta(`FROM order_items`)
	addressJSON   = []byte(`{"details":"12 Main St","phone":"555","city":"Springfield","postal_code":"12345"}`)
)

func setupOrderRepoTest(t *testing.T) (repository.OrderRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewOrderRepository(db)
	require.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")

	return repo, mock
}

func orderRow(rows *sqlmock.Rows, id, userID uuid.UUID, sessionID any, paidAt any) *sqlmock.Rows {
	now := time.Now()
	method := models.PaymentMethodCash
	isPaid := paidAt != nil

	if sessionID != nil {
		method = models.PaymentMethodCard
	}

	return rows.AddRow(id.String(), userID.String(), addressJSON, models.ShippingStandard, 0.0, 2.4, 42.4,
		string(method), sessionID, isPaid, paidAt, false, nil, now, now)
}

func TestNewOrderRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewOrderRepository(db)
	assert.NotNil(t, repo, "NewOrderRepository should return a non-nil repository")
}

func TestOrderRepository_CreateOrder(t *testing.T) {
	ctx := t.Context()
	orderInsertSQL := regexp.QuoteMeta(`INSERT INTO orders`)
	itemInsertSQL := regexp.QuoteMeta(`INSERT INTO order_items`)

	newOrder := func() *models.Order {
		orderID := uuid.New()
		discounted := 18.0
		sessionID := "cs_test_123"

		return &models.Order{
			ID:     orderID,
			UserID: uuid.New(),
			Items: []models.OrderItem{
				{ID: uuid.New(), OrderID: orderID, ProductID: uuid.New(), Quantity: 2, Price: 10, PriceAfterDiscount: &discounted},
				{ID: uuid.New(), OrderID: orderID, ProductID: uuid.New(), Quantity: 1, Color: "red", Price: 22},
			},
			ShippingAddress:   models.ShippingAddress{Details: "12 Main St", Phone: "555", City: "Springfield", PostalCode: "12345"},
			ShippingMethod:    models.ShippingStandard,
			TaxPrice:          3.48,
			TotalOrderPrice:   61.48,
			PaymentMethodType: models.PaymentMethodCard,
			CheckoutSessionID: &sessionID,
		}
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()
		now := time.Now()

		mock.ExpectQuery(orderInsertSQL).
			WithArgs(order.ID, order.UserID, addressJSON, order.ShippingMethod, 0.0, 3.48, 61.48,
				order.PaymentMethodType, "cs_test_123", false, nil).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		for _, item := range order.Items {
			mock.ExpectExec(itemInsertSQL).
				WithArgs(item.ID, order.ID, item.ProductID, item.Quantity, item.Color, item.Size, item.Price, item.PriceAfterDiscount).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, order.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Duplicate Session", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()

		mock.ExpectQuery(orderInsertSQL).WillReturnError(&pq.Error{Code: "23505"})

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item Insert Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		order := newOrder()
		dbErr := errors.New("foreign key violation")

		mock.ExpectQuery(orderInsertSQL).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectExec(itemInsertSQL).WillReturnError(dbErr)

		// Act
		err := repo.CreateOrder(ctx, order)

		// Assert
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to insert an order item")
	})
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	ctx := t.Context()
	selectSQL := regexp.QuoteMeta(`FROM orders WHERE id = $1`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		orderID, userID := uuid.New(), uuid.New()
		itemID, productID := uuid.New(), uuid.New()

		mock.ExpectQuery(selectSQL).
			WithArgs(orderID).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), orderID, userID, nil, nil))

		mock.ExpectQuery(orderItemsSQL).
			WithArgs(pq.Array([]string{orderID.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(itemID.String(), orderID.String(), productID.String(), 4, "", "", 10.0, nil))

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, "Springfield", order.ShippingAddress.City)
		assert.Equal(t, models.PaymentMethodCash, order.PaymentMethodType)
		assert.Nil(t, order.CheckoutSessionID)
		assert.False(t, order.IsPaid)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 4, order.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		orderID := uuid.New()

		mock.ExpectQuery(selectSQL).WithArgs(orderID).WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetOrderByID(ctx, orderID)

		// Assert
		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderBySessionID(t *testing.T) {
	// Arrange
	repo, mock := setupOrderRepoTest(t)
	orderID, userID := uuid.New(), uuid.New()
	paidAt := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE checkout_session_id = $1`)).
		WithArgs("cs_test_123").
		WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), orderID, userID, "cs_test_123", paidAt))
	mock.ExpectQuery(orderItemsSQL).WillReturnRows(sqlmock.NewRows(orderItemColumns))

	// Act
	order, err := repo.GetOrderBySessionID(t.Context(), "cs_test_123")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, order.CheckoutSessionID)
	assert.Equal(t, "cs_test_123", *order.CheckoutSessionID)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.Empty(t, order.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListOrders(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Scoped to user", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		userID := uuid.New()
		first, second := uuid.New(), uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		rows := sqlmock.NewRows(orderRowColumns)
		orderRow(rows, first, userID, nil, nil)
		orderRow(rows, second, userID, nil, nil)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`)).
			WithArgs(userID, 10, 10).
			WillReturnRows(rows)

		mock.ExpectQuery(orderItemsSQL).
			WithArgs(pq.Array([]string{first.String(), second.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumns).
				AddRow(uuid.NewString(), second.String(), uuid.NewString(), 1, "", "", 5.0, nil).
				AddRow(uuid.NewString(), second.String(), uuid.NewString(), 2, "", "", 6.0, nil))

		// Act
		orders, total, err := repo.ListOrders(ctx, &userID, 2, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		require.Len(t, orders, 2)
		assert.Empty(t, orders[0].Items)
		assert.Len(t, orders[1].Items, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - All users", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`)).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		// Act
		orders, total, err := repo.ListOrders(ctx, nil, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Count Error", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		dbErr := errors.New("timeout")

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders`)).WillReturnError(dbErr)

		// Act
		_, _, err := repo.ListOrders(ctx, nil, 1, 10)

		// Assert
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestOrderRepository_MarkPaid(t *testing.T) {
	ctx := t.Context()
	updateSQL := regexp.QuoteMeta(`SET is_paid = TRUE, paid_at = COALESCE(paid_at, $2)`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		orderID, userID := uuid.New(), uuid.New()
		at := time.Now()

		mock.ExpectQuery(updateSQL).
			WithArgs(orderID, at).
			WillReturnRows(orderRow(sqlmock.NewRows(orderRowColumns), orderID, userID, nil, at))
		mock.ExpectQuery(orderItemsSQL).WillReturnRows(sqlmock.NewRows(orderItemColumns))

		// Act
		order, err := repo.MarkPaid(ctx, orderID, at)

		// Assert
		require.NoError(t, err)
		assert.True(t, order.IsPaid)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		repo, mock := setupOrderRepoTest(t)
		orderID := uuid.New()

		mock.ExpectQuery(updateSQL).WillReturnError(sql.ErrNoRows)

		// Act
		_, err := repo.MarkPaid(ctx, orderID, time.Now())

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestOrderRepository_MarkDelivered(t *testing.T) {
	// Arrange
	repo, mock := setupOrderRepoTest(t)
	orderID := uuid.New()
	at := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SET is_delivered = TRUE, delivered_at = COALESCE(delivered_at, $2)`)).
		WithArgs(orderID, at).
		WillReturnError(sql.ErrNoRows)

	// Act
	order, err := repo.MarkDelivered(t.Context(), orderID, at)

	// Assert
	assert.Nil(t, order)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
