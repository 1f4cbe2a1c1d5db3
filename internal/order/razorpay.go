package order

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/utils"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayClient talks to the hosted payment-links API. All sensitive payment
// handling happens on the provider's hosted page; this client only creates
// links and never sees card data.
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
	logger    *logger.Logger
}

func NewRazorpayClient(keyID, keySecret string, log *logger.Logger) *RazorpayClient {
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    log,
	}
}

type PaymentLinkParams struct {
	Amount      float64
	Description string
	Name        string
	Email       string
	Phone       string
	OrderID     int64
	Package     string
	CallbackURL string
	Receipt     string
}

type PaymentLink struct {
	ID       string `json:"id"`
	ShortURL string `json:"short_url"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreatePaymentLink requests a hosted checkout link. The order id and package
// ride along as opaque notes so the webhook can find the order later.
func (c *RazorpayClient) CreatePaymentLink(ctx context.Context, p PaymentLinkParams) (*PaymentLink, error) {
	body := map[string]interface{}{
		"amount":       int64(p.Amount * 100), // minor units
		"currency":     "INR",
		"description":  p.Description,
		"reference_id": p.Receipt,
		"customer": map[string]string{
			"name":    p.Name,
			"email":   p.Email,
			"contact": p.Phone,
		},
		"notify": map[string]bool{"sms": false, "email": true},
		"notes": map[string]string{
			"order_id": fmt.Sprintf("%d", p.OrderID),
			"package":  p.Package,
		},
		"callback_url":    p.CallbackURL,
		"callback_method": "get",
	}

	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment link request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment_links", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	requestID := utils.GenerateRequestID()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable (request %s): %w", requestID, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var provErr razorpayError
		if err := json.Unmarshal(respBody, &provErr); err == nil && provErr.Error.Description != "" {
			return nil, fmt.Errorf("payment link creation failed: %s (%s)",
				provErr.Error.Description, provErr.Error.Code)
		}
		return nil, fmt.Errorf("payment link creation failed: status %d", resp.StatusCode)
	}

	var link PaymentLink
	if err := json.Unmarshal(respBody, &link); err != nil {
		return nil, fmt.Errorf("failed to decode payment link: %w", err)
	}

	c.logger.Info("PAYMENT", fmt.Sprintf("Created payment link %s for order %d (request %s)", link.ID, p.OrderID, requestID))
	return &link, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderId|paymentId" with the
// provider key secret and compares it against the caller-supplied signature.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
