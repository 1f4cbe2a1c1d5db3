package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
)

// Package tiers sold on the site. Order intake rejects anything else.
var PackageNames = []string{"Starter", "Professional", "Enterprise"}

type Order struct {
	bun.BaseModel `bun:"table:orders"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Email         string    `bun:"email,notnull" json:"email"`
	Phone         string    `bun:"phone,notnull" json:"phone"`
	Package       string    `bun:"package,notnull" json:"package"`
	Amount        float64   `bun:"amount,notnull" json:"amount"`
	Status        string    `bun:"status,notnull,default:'pending'" json:"status"`
	PaymentLinkID string    `bun:"payment_link_id,nullzero" json:"payment_link_id,omitempty"`
	PaymentID     string    `bun:"payment_id,nullzero" json:"payment_id,omitempty"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type OrderRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Phone   string  `json:"phone" validate:"required,e164"`
	Package string  `json:"package" validate:"required,oneof=Starter Professional Enterprise"`
	Price   float64 `json:"price" validate:"required,gt=0"`
}

type OrderResponse struct {
	OrderID         int64   `json:"orderId"`
	PaymentLink     *string `json:"paymentLink"`
	RazorpayOrderID string  `json:"razorpayOrderId,omitempty"`
	Amount          float64 `json:"amount"`
	TestMode        bool    `json:"testMode"`
	UseHostedPage   bool    `json:"useHostedPage"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// OrderEvent is the envelope published to the order event stream.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   int64     `json:"order_id"`
	Package   string    `json:"package"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	PaymentID string    `json:"payment_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
