package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"

	"summit-ticketing/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateOrder inserts the pending row inside a transaction. The store assigns
// the numeric id; it is populated on the model before return.
func (d *DB) CreateOrder(ctx context.Context, order *models.Order) error {
	return d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(order).Returning("id").Exec(ctx)
		return err
	})
}

func (d *DB) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := d.Bun.NewSelect().
		Model(&order).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetPaymentLink records the provider's link id after the outbound call. This
// is a second update, deliberately not part of the insert transaction.
func (d *DB) SetPaymentLink(ctx context.Context, id int64, linkID string) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Order)(nil)).
		Set("payment_link_id = ?", linkID).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// CompleteOrder flips the status and records the payment id with no guard on
// the current status. Racing confirmation channels both succeed; the last
// writer's payment_id sticks. A missing order updates zero rows and is not
// an error.
func (d *DB) CompleteOrder(ctx context.Context, id int64, paymentID string) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Order)(nil)).
		Set("status = ?", models.OrderStatusCompleted).
		Set("payment_id = ?", paymentID).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (d *DB) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := d.Bun.NewSelect().
		Model(&orders).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
