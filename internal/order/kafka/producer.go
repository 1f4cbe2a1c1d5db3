package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"summit-ticketing/internal/logger"
	"summit-ticketing/internal/models"
)

// Producer streams order lifecycle events for downstream consumers (mailers,
// reporting). MockMode keeps the event path alive in environments without a
// broker: events are logged instead of written.
type Producer struct {
	Writer   *kafka.Writer
	Logger   *logger.Logger
	MockMode bool
}

func NewProducer(brokers []string, topic string, mockMode bool, log *logger.Logger) *Producer {
	p := &Producer{Logger: log, MockMode: mockMode}
	if !mockMode {
		p.Writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   topic,
		})
	}
	return p
}

func (p *Producer) PublishOrderCreated(order models.Order) error {
	return p.publish("order.created", order)
}

func (p *Producer) PublishOrderCompleted(order models.Order) error {
	return p.publish("order.completed", order)
}

func (p *Producer) publish(eventType string, order models.Order) error {
	event := models.OrderEvent{
		Type:      eventType,
		OrderID:   order.ID,
		Package:   order.Package,
		Amount:    order.Amount,
		Status:    order.Status,
		PaymentID: order.PaymentID,
		Timestamp: time.Now(),
	}

	if p.MockMode {
		p.Logger.Info("KAFKA", fmt.Sprintf("[mock] %s order=%d", eventType, order.ID))
		return nil
	}

	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(fmt.Sprintf("%d", order.ID)),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	if p.Writer != nil {
		return p.Writer.Close()
	}
	return nil
}
