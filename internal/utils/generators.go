package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateReceiptID builds a provider-facing receipt reference for a payment link.
func GenerateReceiptID(orderID int64) string {
	return fmt.Sprintf("rcpt_%d_%d", orderID, time.Now().Unix())
}

// GenerateRequestID returns a unique id for correlating outbound provider calls in logs.
func GenerateRequestID() string {
	return uuid.NewString()
}
