package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun/driver/pgdriver"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/order"
	"summit-ticketing/internal/order/qr"
	"summit-ticketing/internal/utils"
)

type Handler struct {
	OrderService *order.OrderService
	Passes       *qr.Generator
	Logger       *logger.Logger
	FrontendURL  string
}

func NewHandler(orderService *order.OrderService, passes *qr.Generator, log *logger.Logger, frontendURL string) *Handler {
	return &Handler{
		OrderService: orderService,
		Passes:       passes,
		Logger:       log,
		FrontendURL:  frontendURL,
	}
}

// CreateOrder handles POST /api/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if fields := utils.ValidateStruct(req); fields != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ValidationResponse(fields))
		return
	}

	resp, err := h.OrderService.CreateOrder(r.Context(), req)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.IntegrityViolation() {
			utils.WriteError(w, http.StatusConflict, "Order already exists", "duplicate")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("CreateOrder: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order", "internal_error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// VerifyPayment handles POST /api/verify-payment, the manual confirmation
// channel.
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ValidationResponse(fields))
		return
	}

	orderID, err := strconv.ParseInt(req.OrderID, 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order id", "validation_error")
		return
	}

	if err := h.OrderService.VerifyPayment(r.Context(), orderID, req.PaymentID, req.Signature); err != nil {
		if errors.Is(err, order.ErrBadSignature) {
			utils.WriteError(w, http.StatusBadRequest, "Invalid payment signature", "bad_signature")
			return
		}
		h.Logger.Error("API", fmt.Sprintf("VerifyPayment: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Payment verification failed", "internal_error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// PaymentSuccess handles the browser redirect back from the hosted page. It
// always answers with a redirect to the front end; the payment flag in the
// query tells the page what to render.
func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	orderParam := q.Get("order_id")
	paymentID := q.Get("razorpay_payment_id")
	linkStatus := q.Get("razorpay_payment_link_status")

	flag := "failed"
	if linkStatus == "paid" && orderParam != "" {
		orderID, err := strconv.ParseInt(orderParam, 10, 64)
		if err == nil {
			if err := h.OrderService.CompleteFromRedirect(r.Context(), orderID, paymentID); err != nil {
				h.Logger.Error("API", fmt.Sprintf("PaymentSuccess: %v", err))
				flag = "error"
			} else {
				flag = "success"
			}
		} else {
			flag = "error"
		}
	}

	redirect := fmt.Sprintf("%s/?payment=%s&order=%s", h.FrontendURL, flag, url.QueryEscape(orderParam))
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Webhook handles the provider's server-to-server callback. It acknowledges
// everything it could parse so the provider does not retry; only a store
// failure returns 500 to trigger a provider-side retry.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var envelope order.WebhookEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid webhook payload", err.Error())
		return
	}

	if err := h.OrderService.HandleWebhook(r.Context(), envelope); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Webhook: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Webhook processing error", "internal_error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListOrders handles GET /api/admin/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.OrderService.ListOrders(r.Context())
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("ListOrders: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list orders", "internal_error")
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("OK", orders))
}

// OrderPass handles GET /api/admin/orders/{orderId}/pass and returns an
// encrypted QR check-in pass for a completed order.
func (h *Handler) OrderPass(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid order id", "validation_error")
		return
	}

	ord, err := h.OrderService.GetOrder(r.Context(), orderID)
	if err != nil {
		utils.WriteError(w, http.StatusNotFound, "Order not found", "not_found")
		return
	}
	if ord.Status != models.OrderStatusCompleted {
		utils.WriteError(w, http.StatusBadRequest, "Order is not completed", "order_pending")
		return
	}

	png, err := h.Passes.GeneratePass(*ord)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("OrderPass: %v", err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to generate pass", "internal_error")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
