package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/order"
	"summit-ticketing/internal/order/qr"
)

type stubOrderDB struct {
	orders map[int64]*models.Order
	nextID int64
}

func newStubOrderDB() *stubOrderDB {
	return &stubOrderDB{orders: make(map[int64]*models.Order), nextID: 1}
}

func (s *stubOrderDB) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = s.nextID
	s.nextID++
	copied := *order
	s.orders[order.ID] = &copied
	return nil
}

func (s *stubOrderDB) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	order, exists := s.orders[id]
	if !exists {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (s *stubOrderDB) SetPaymentLink(ctx context.Context, id int64, linkID string) error {
	if order, exists := s.orders[id]; exists {
		order.PaymentLinkID = linkID
	}
	return nil
}

func (s *stubOrderDB) CompleteOrder(ctx context.Context, id int64, paymentID string) error {
	if order, exists := s.orders[id]; exists {
		order.Status = models.OrderStatusCompleted
		order.PaymentID = paymentID
	}
	return nil
}

func (s *stubOrderDB) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

const testSecret = "test_secret"

func newTestHandler(db *stubOrderDB) *Handler {
	log := logger.NewTestLogger()
	service := order.NewOrderService(db, nil, nil, log,
		testSecret, "http://backend.test", "http://frontend.test")
	return NewHandler(service, qr.NewGenerator("qr-secret"), log, "http://frontend.test")
}

func seedPendingOrder(t *testing.T, db *stubOrderDB) int64 {
	t.Helper()
	order := &models.Order{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Phone:   "+919999999999",
		Package: "Professional",
		Amount:  299,
		Status:  models.OrderStatusPending,
	}
	require.NoError(t, db.CreateOrder(context.Background(), order))
	return order.ID
}

func TestCreateOrderWithoutProvider(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)

	body := `{"name":"Jane Doe","email":"jane@x.com","phone":"+919999999999","package":"Professional","price":299}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OrderID     int64   `json:"orderId"`
		PaymentLink *string `json:"paymentLink"`
		TestMode    bool    `json:"testMode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.OrderID)
	assert.Nil(t, resp.PaymentLink)
	assert.True(t, resp.TestMode)

	assert.Equal(t, models.OrderStatusPending, db.orders[1].Status)
}

func TestCreateOrderValidationFailure(t *testing.T) {
	h := newTestHandler(newStubOrderDB())

	body := `{"name":"J","email":"not-an-email","phone":"12345","package":"Gold","price":0}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "phone")
	assert.Contains(t, resp.Fields, "package")
	assert.Contains(t, resp.Fields, "price")
}

func TestCreateOrderMalformedBody(t *testing.T) {
	h := newTestHandler(newStubOrderDB())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	h.CreateOrder(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(fmt.Sprintf("%d|pay_xyz", id)))
	sig := hex.EncodeToString(mac.Sum(nil))

	body := fmt.Sprintf(`{"orderId":"%d","paymentId":"pay_xyz","signature":%q}`, id, sig)
	req := httptest.NewRequest(http.MethodPost, "/api/verify-payment", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.VerifyPayment(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())
	assert.Equal(t, models.OrderStatusCompleted, db.orders[id].Status)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	body := fmt.Sprintf(`{"orderId":"%d","paymentId":"pay_xyz","signature":"deadbeef"}`, id)
	req := httptest.NewRequest(http.MethodPost, "/api/verify-payment", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.VerifyPayment(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.OrderStatusPending, db.orders[id].Status)
}

func TestWebhookCompletesOrder(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	body := fmt.Sprintf(`{
		"event": "payment_link.paid",
		"payload": {
			"payment_link": {"notes": {"order_id": %d}},
			"payment": {"id": "pay_abc"}
		}
	}`, id)
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay-webhook", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, models.OrderStatusCompleted, db.orders[id].Status)
	assert.Equal(t, "pay_abc", db.orders[id].PaymentID)
}

func TestWebhookUnknownEventIsAcknowledged(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	body := `{"event": "payment_link.expired", "payload": {}}`
	req := httptest.NewRequest(http.MethodPost, "/api/razorpay-webhook", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.Webhook(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusPending, db.orders[id].Status)
}

func TestPaymentSuccessRedirectsOnPaid(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	target := fmt.Sprintf("/api/payment-success?order_id=%d&razorpay_payment_id=pay_r&razorpay_payment_link_status=paid", id)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	h.PaymentSuccess(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("http://frontend.test/?payment=success&order=%d", id), w.Header().Get("Location"))
	assert.Equal(t, models.OrderStatusCompleted, db.orders[id].Status)
	assert.Equal(t, "pay_r", db.orders[id].PaymentID)
}

func TestPaymentSuccessRedirectsFailedOnCancelled(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	target := fmt.Sprintf("/api/payment-success?order_id=%d&razorpay_payment_link_status=cancelled", id)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()

	h.PaymentSuccess(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, fmt.Sprintf("http://frontend.test/?payment=failed&order=%d", id), w.Header().Get("Location"))
	assert.Equal(t, models.OrderStatusPending, db.orders[id].Status, "cancelled redirect must not mutate the order")
}

func TestPaymentSuccessRedirectsErrorOnBadOrderID(t *testing.T) {
	h := newTestHandler(newStubOrderDB())

	req := httptest.NewRequest(http.MethodGet, "/api/payment-success?order_id=abc&razorpay_payment_link_status=paid", nil)
	w := httptest.NewRecorder()

	h.PaymentSuccess(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "http://frontend.test/?payment=error&order=abc", w.Header().Get("Location"))
}

func passRequest(orderID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/"+orderID+"/pass", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("orderId", orderID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOrderPassForCompletedOrder(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)
	require.NoError(t, db.CompleteOrder(context.Background(), id, "pay_abc"))

	w := httptest.NewRecorder()
	h.OrderPass(w, passRequest(fmt.Sprintf("%d", id)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestOrderPassRejectsPendingOrder(t *testing.T) {
	db := newStubOrderDB()
	h := newTestHandler(db)
	id := seedPendingOrder(t, db)

	w := httptest.NewRecorder()
	h.OrderPass(w, passRequest(fmt.Sprintf("%d", id)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderPassUnknownOrder(t *testing.T) {
	h := newTestHandler(newStubOrderDB())

	w := httptest.NewRecorder()
	h.OrderPass(w, passRequest("9999"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
