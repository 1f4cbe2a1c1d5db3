package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
	"summit-ticketing/internal/utils"
)

var ErrBadSignature = errors.New("signature verification failed")

type DBLayer interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	SetPaymentLink(ctx context.Context, id int64, linkID string) error
	CompleteOrder(ctx context.Context, id int64, paymentID string) error
	ListOrders(ctx context.Context) ([]models.Order, error)
}

type PaymentClient interface {
	CreatePaymentLink(ctx context.Context, p PaymentLinkParams) (*PaymentLink, error)
}

type EventPublisher interface {
	PublishOrderCreated(order models.Order) error
	PublishOrderCompleted(order models.Order) error
}

type OrderService struct {
	DB        DBLayer
	Payments  PaymentClient // nil in test mode
	Events    EventPublisher
	Logger    *logger.Logger
	KeySecret string

	BackendURL  string
	FrontendURL string
}

func NewOrderService(db DBLayer, payments PaymentClient, events EventPublisher,
	log *logger.Logger, keySecret, backendURL, frontendURL string) *OrderService {
	return &OrderService{
		DB:          db,
		Payments:    payments,
		Events:      events,
		Logger:      log,
		KeySecret:   keySecret,
		BackendURL:  backendURL,
		FrontendURL: frontendURL,
	}
}

// CreateOrder inserts a pending order, then asks the provider for a hosted
// payment link. The provider call is outside the insert transaction: a crash
// between the two leaves the order pending with no payment reference, which
// the reconciliation channels never pick up. A failed provider call is not an
// error either - the order stands and the response degrades to test mode.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.OrderResponse, error) {
	order := &models.Order{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Package: req.Package,
		Amount:  req.Price,
		Status:  models.OrderStatusPending,
	}

	if err := s.DB.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	s.Logger.LogOrder("CREATE", fmt.Sprintf("%d", order.ID),
		fmt.Sprintf("Pending order for package %s (%.2f)", order.Package, order.Amount))

	if s.Events != nil {
		if err := s.Events.PublishOrderCreated(*order); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish order.created for %d: %v", order.ID, err))
		}
	}

	resp := &models.OrderResponse{
		OrderID:  order.ID,
		Amount:   order.Amount,
		TestMode: true,
	}

	if s.Payments == nil {
		s.Logger.Info("PAYMENT", fmt.Sprintf("No provider configured, order %d created in test mode", order.ID))
		return resp, nil
	}

	link, err := s.Payments.CreatePaymentLink(ctx, PaymentLinkParams{
		Amount:      order.Amount,
		Description: fmt.Sprintf("Summit ticket - %s", order.Package),
		Name:        order.Name,
		Email:       order.Email,
		Phone:       order.Phone,
		OrderID:     order.ID,
		Package:     order.Package,
		CallbackURL: s.BackendURL + "/api/payment-success",
		Receipt:     utils.GenerateReceiptID(order.ID),
	})
	if err != nil {
		// Degraded success: the order stays pending with no link.
		s.Logger.Error("PAYMENT", fmt.Sprintf("Payment link for order %d failed: %v", order.ID, err))
		return resp, nil
	}

	if err := s.DB.SetPaymentLink(ctx, order.ID, link.ID); err != nil {
		s.Logger.Error("PAYMENT", fmt.Sprintf("Failed to store payment link %s on order %d: %v", link.ID, order.ID, err))
		return resp, nil
	}

	resp.PaymentLink = &link.ShortURL
	resp.RazorpayOrderID = link.ID
	resp.TestMode = false
	resp.UseHostedPage = true
	return resp, nil
}

// VerifyPayment is the manual confirmation channel. A matching signature
// completes the order regardless of its current status; the channels do not
// guard against each other.
func (s *OrderService) VerifyPayment(ctx context.Context, orderID int64, paymentID, signature string) error {
	if !VerifySignature(s.KeySecret, fmt.Sprintf("%d", orderID), paymentID, signature) {
		s.Logger.LogSecurity("VERIFY", fmt.Sprintf("Bad signature for order %d", orderID))
		return ErrBadSignature
	}
	return s.completeOrder(ctx, orderID, paymentID, "manual-verify")
}

// CompleteFromRedirect handles the browser return trip from the hosted page.
// The query parameters carry no verifiable signature; this channel trusts the
// provider not to let the redirect be forged.
func (s *OrderService) CompleteFromRedirect(ctx context.Context, orderID int64, paymentID string) error {
	return s.completeOrder(ctx, orderID, paymentID, "redirect")
}

// WebhookEnvelope is the provider's server-to-server event shape.
type WebhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Notes struct {
				OrderID json.Number `json:"order_id"`
			} `json:"notes"`
		} `json:"payment_link"`
		Payment struct {
			ID string `json:"id"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook acts only on payment_link.paid. Unknown events and unmatched
// orders are acknowledged silently so the provider does not retry forever;
// only a store failure propagates as an error.
func (s *OrderService) HandleWebhook(ctx context.Context, envelope WebhookEnvelope) error {
	if envelope.Event != "payment_link.paid" {
		s.Logger.Debug("WEBHOOK", fmt.Sprintf("Ignoring event %q", envelope.Event))
		return nil
	}

	orderID, err := envelope.Payload.PaymentLink.Notes.OrderID.Int64()
	if err != nil || orderID == 0 {
		s.Logger.Warn("WEBHOOK", "payment_link.paid event carries no usable order_id note")
		return nil
	}

	return s.completeOrder(ctx, orderID, envelope.Payload.Payment.ID, "webhook")
}

// completeOrder is the shared write all three confirmation channels converge
// on. The update is unconditional: whichever channel writes last wins, and
// payment_id reflects that writer.
func (s *OrderService) completeOrder(ctx context.Context, orderID int64, paymentID, channel string) error {
	if err := s.DB.CompleteOrder(ctx, orderID, paymentID); err != nil {
		return fmt.Errorf("failed to complete order %d via %s: %w", orderID, channel, err)
	}
	s.Logger.LogOrder("COMPLETE", fmt.Sprintf("%d", orderID),
		fmt.Sprintf("Marked completed via %s (payment %s)", channel, paymentID))

	if s.Events != nil {
		event := models.Order{ID: orderID, Status: models.OrderStatusCompleted, PaymentID: paymentID}
		if err := s.Events.PublishOrderCompleted(event); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("Failed to publish order.completed for %d: %v", orderID, err))
		}
	}
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	return s.DB.GetOrderByID(ctx, id)
}

func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.DB.ListOrders(ctx)
}
