package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/handlers"
	appErrors "github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/services/mocks"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/testutils"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderEnvelope struct {
	Status  string                  `json:"status"`
	Message string                  `json:"message"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func setupOrderTest(t *testing.T) (*mocks.MockOrderService, *handlers.OrderHandler) {
	mockOrderService := mocks.NewMockOrderService(t)
	return mockOrderService, handlers.NewOrderHandler(mockOrderService)
}

func decodeOrder(t *testing.T, recorder *httptest.ResponseRecorder, data any) orderEnvelope {
	t.Helper()

	var resp orderEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}

	return resp
}

func TestCreateCashOrder(t *testing.T) {
	userID := uuid.New()
	cartID := uuid.New()
	path := map[string]string{"cartId": cartID.String()}

	request := models.CreateCashOrderRequest{
		ShippingMethod:  models.ShippingStandard,
		ShippingAddress: models.ShippingAddress{Details: "12 Main St", City: "Pune", PostalCode: "411001"},
	}

	t.Run("Success - Order Created", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/"+cartID.String(), jsonBody(t, request), userID, path)
		recorder := httptest.NewRecorder()

		order := &models.Order{
			ID:                uuid.New(),
			UserID:            userID,
			ShippingMethod:    models.ShippingStandard,
			TaxPrice:          2.4,
			TotalOrderPrice:   42.4,
			PaymentMethodType: models.PaymentMethodCash,
		}
		mockOrderService.On("CreateCashOrder", mock.Anything, mock.MatchedBy(func(c *models.Claims) bool {
			return c.UserID == userID
		}), cartID, mock.MatchedBy(func(r *models.CreateCashOrderRequest) bool {
			return r.ShippingMethod == models.ShippingStandard && r.ShippingAddress.City == "Pune"
		})).Return(order, nil).Once()

		// Act
		orderHandler.CreateCashOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var got models.Order
		resp := decodeOrder(t, recorder, &got)
		assert.Equal(t, response.StatusSuccess, resp.Status)
		assert.Equal(t, order.ID, got.ID)
		assert.InDelta(t, 42.4, got.TotalOrderPrice, 0.001)
		assert.False(t, got.IsPaid)
	})

	t.Run("Failure - Invalid Cart ID", func(t *testing.T) {
		// Arrange
		_, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/abc", jsonBody(t, request), userID,
			map[string]string{"cartId": "abc"})
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.CreateCashOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Forbidden Cart", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/"+cartID.String(), jsonBody(t, request), userID, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("CreateCashOrder", mock.Anything, mock.Anything, cartID, mock.Anything).
			Return(nil, appErrors.ForbiddenError("You are not allowed to check out this cart")).Once()

		// Act
		orderHandler.CreateCashOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
		assert.Equal(t, appErrors.ErrCodeForbidden, decodeOrder(t, recorder, nil).Error.Code)
	})

	t.Run("Failure - Empty Body", func(t *testing.T) {
		// Arrange
		_, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/api/v1/orders/"+cartID.String(), bytes.NewBuffer(nil), userID, path)
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.CreateCashOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Unauthorized", func(t *testing.T) {
		// Arrange
		_, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/orders/"+cartID.String(), jsonBody(t, request), path)
		recorder := httptest.NewRecorder()

		// Act
		orderHandler.CreateCashOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestGetOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	path := map[string]string{"id": orderID.String()}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrder", mock.Anything, mock.Anything, orderID).
			Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var got models.Order
		decodeOrder(t, recorder, &got)
		assert.Equal(t, orderID, got.ID)
	})

	t.Run("Failure - Another User's Order", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrder", mock.Anything, mock.Anything, orderID).
			Return(nil, appErrors.ForbiddenError("You are not allowed to view this order")).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil, userID, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("GetOrder", mock.Anything, mock.Anything, orderID).
			Return(nil, appErrors.NotFoundError("Order not found")).Once()

		// Act
		orderHandler.GetOrder()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListOrders(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Default Pagination", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders", nil, userID, nil)
		recorder := httptest.NewRecorder()

		list := &models.OrderListResponse{
			Orders: []models.Order{{ID: uuid.New(), UserID: userID}},
			Total:  1,
			Page:   models.DefaultPage,
			Size:   models.DefaultPageSize,
		}
		mockOrderService.On("ListOrders", mock.Anything, mock.Anything, models.DefaultPage, models.DefaultPageSize).Return(list, nil).Once()

		// Act
		orderHandler.ListOrders()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var got models.OrderListResponse
		decodeOrder(t, recorder, &got)
		assert.Equal(t, 1, got.Total)
		assert.Len(t, got.Orders, 1)
	})

	t.Run("Success - Page Size Capped", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/orders?page=3&pageSize=500", nil, userID, nil)
		recorder := httptest.NewRecorder()

		mockOrderService.On("ListOrders", mock.Anything, mock.Anything, 3, models.MaxPageSize).
			Return(&models.OrderListResponse{Orders: []models.Order{}, Page: 3, Size: models.MaxPageSize}, nil).Once()

		// Act
		orderHandler.ListOrders()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	orderID := uuid.New()
	path := map[string]string{"id": orderID.String()}
	admin := &models.Claims{UserID: uuid.New(), Role: models.RoleAdmin}
	now := time.Now()

	t.Run("Mark Paid", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithClaims(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/pay", nil, admin, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("MarkPaid", mock.Anything, orderID).Return(&models.Order{ID: orderID, IsPaid: true, PaidAt: &now}, nil).Once()

		// Act
		orderHandler.MarkPaid()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var got models.Order
		resp := decodeOrder(t, recorder, &got)
		assert.Equal(t, "Order marked as paid", resp.Message)
		assert.True(t, got.IsPaid)
	})

	t.Run("Mark Delivered", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithClaims(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/deliver", nil, admin, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("MarkDelivered", mock.Anything, orderID).
			Return(&models.Order{ID: orderID, IsDelivered: true, DeliveredAt: &now}, nil).Once()

		// Act
		orderHandler.MarkDelivered()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusOK, recorder.Code)

		var got models.Order
		decodeOrder(t, recorder, &got)
		assert.True(t, got.IsDelivered)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		// Arrange
		mockOrderService, orderHandler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithClaims(http.MethodPut, "/api/v1/orders/"+orderID.String()+"/pay", nil, admin, path)
		recorder := httptest.NewRecorder()

		mockOrderService.On("MarkPaid", mock.Anything, orderID).Return(nil, appErrors.NotFoundError("Order not found")).Once()

		// Act
		orderHandler.MarkPaid()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
