package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"summit-ticketing/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { bunDB.Close() })

	err = bunDB.ResetModel(context.Background(), (*models.Order)(nil))
	require.NoError(t, err)

	return &DB{Bun: bunDB}
}

func sampleOrder() *models.Order {
	return &models.Order{
		Name:    "Jane Doe",
		Email:   "jane@x.com",
		Phone:   "+919999999999",
		Package: "Professional",
		Amount:  299,
		Status:  models.OrderStatusPending,
	}
}

func TestCreateOrderAssignsID(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, store.CreateOrder(ctx, order))
	assert.Greater(t, order.ID, int64(0))

	got, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
	assert.Empty(t, got.PaymentLinkID)
	assert.Empty(t, got.PaymentID)
}

func TestSetPaymentLink(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, store.CreateOrder(ctx, order))
	require.NoError(t, store.SetPaymentLink(ctx, order.ID, "plink_123"))

	got, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "plink_123", got.PaymentLinkID)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestCompleteOrder(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, store.CreateOrder(ctx, order))
	require.NoError(t, store.CompleteOrder(ctx, order.ID, "pay_abc"))

	got, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
	assert.Equal(t, "pay_abc", got.PaymentID)
}

func TestCompleteOrderOverwritesPreviousWriter(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	order := sampleOrder()
	require.NoError(t, store.CreateOrder(ctx, order))

	// No only-from-pending guard: a second confirmation channel replaces the
	// first channel's payment id.
	require.NoError(t, store.CompleteOrder(ctx, order.ID, "pay_first"))
	require.NoError(t, store.CompleteOrder(ctx, order.ID, "pay_second"))

	got, err := store.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, got.Status)
	assert.Equal(t, "pay_second", got.PaymentID)
}

func TestCompleteOrderMissingRowIsNotAnError(t *testing.T) {
	store := setupTestDB(t)
	assert.NoError(t, store.CompleteOrder(context.Background(), 9999, "pay_ghost"))
}

func TestGetOrderByIDNotFound(t *testing.T) {
	store := setupTestDB(t)
	_, err := store.GetOrderByID(context.Background(), 9999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	older := sampleOrder()
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.CreateOrder(ctx, older))

	newer := sampleOrder()
	newer.Name = "John Roe"
	newer.CreatedAt = time.Now()
	require.NoError(t, store.CreateOrder(ctx, newer))

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "John Roe", orders[0].Name)
	assert.Equal(t, "Jane Doe", orders[1].Name)
}

func TestListOrdersEmpty(t *testing.T) {
	store := setupTestDB(t)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
