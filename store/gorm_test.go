package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/junaidrashid-git/rivaleats-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var errNoDatabase = errors.New("dry run: no database")

// dryConn satisfies gorm's connection pool without a server. With DryRun
// set, statements are built and traced but never executed.
type dryConn struct{}

func (*dryConn) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, errNoDatabase
}

func (*dryConn) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, errNoDatabase
}

func (*dryConn) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errNoDatabase
}

func (*dryConn) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (*dryConn) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &dryTx{}, nil
}

type dryTx struct{ dryConn }

func (*dryTx) Commit() error   { return nil }
func (*dryTx) Rollback() error { return nil }

// sqlRecorder keeps every statement gorm traces, with bound values inlined.
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface      { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	stmt, _ := fc()
	r.mu.Lock()
	r.stmts = append(r.stmts, stmt)
	r.mu.Unlock()
}

// find returns the first statement starting with prefix.
func (r *sqlRecorder) find(t *testing.T, prefix string) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stmts {
		if strings.HasPrefix(s, prefix) {
			return s
		}
	}
	require.Failf(t, "statement not found", "no %q in %v", prefix, r.stmts)
	return ""
}

func newDryStore(t *testing.T) (*GormStore, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: &dryConn{}}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)
	return NewGormStore(db), rec
}

func TestGormStore_CreateMenuItemKeepsInactiveFlag(t *testing.T) {
	s, rec := newDryStore(t)

	err := s.CreateMenuItem(context.Background(), &models.MenuItem{
		ID:       "m1",
		Name:     "Shakshuka",
		Section:  models.SectionBreakfast,
		Tags:     []string{},
		IsActive: false,
	})
	require.NoError(t, err)

	stmt := rec.find(t, `INSERT INTO "menu_items"`)
	assert.Contains(t, stmt, `"is_active"`)
	assert.Contains(t, stmt, "false")
	assert.NotContains(t, stmt, "true")
}

func TestGormStore_UpsertMenuItems(t *testing.T) {
	s, rec := newDryStore(t)

	n, err := s.UpsertMenuItems(context.Background(), []models.MenuItem{
		{ID: "b1", Name: "Bowl", Section: models.SectionBreakfast, Tags: []string{"vegan"}, IsActive: true},
		{ID: "d1", Name: "Ragu", Section: models.SectionDinner, Tags: []string{}, IsActive: false},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stmt := rec.find(t, `INSERT INTO "menu_items"`)
	assert.Contains(t, stmt, `ON CONFLICT ("id") DO UPDATE SET`)
	for _, col := range []string{"name", "description", "section", "price", "image_url", "tags", "is_active", "updated_at", "deleted_at"} {
		assert.Contains(t, stmt, `"`+col+`"="excluded"."`+col+`"`)
	}
	assert.Contains(t, stmt, "false", "an inactive row is written as inactive")

	n, err = s.UpsertMenuItems(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestGormStore_CreateOrderWithItems(t *testing.T) {
	s, rec := newDryStore(t)

	order := &models.Order{
		OrderRef:           "ref-1",
		CustomerName:       "Ana Diaz",
		Email:              "ana@example.com",
		DeliveryType:       "pickup",
		DeliveryDay:        "sunday",
		ScheduledWeekStart: "2024-01-07",
		Subtotal:           decimal.RequireFromString("24.00"),
		TotalPrice:         decimal.RequireFromString("24.00"),
		Status:             models.OrderStatusPending,
		PaymentStatus:      models.PaymentStatusPending,
		Items: []models.OrderItem{
			{ItemID: "b1", Name: "Bowl", UnitPrice: decimal.RequireFromString("12.00"), Quantity: 2, Allergies: "sesame"},
		},
	}
	require.NoError(t, s.CreateOrder(context.Background(), order))

	orderStmt := rec.find(t, `INSERT INTO "orders"`)
	assert.Contains(t, orderStmt, "'ref-1'")
	assert.Contains(t, orderStmt, "'2024-01-07'")

	itemStmt := rec.find(t, `INSERT INTO "order_items"`)
	assert.Contains(t, itemStmt, "'Bowl'")
	assert.Contains(t, itemStmt, "'sesame'")
}

func TestGormStore_ListOrdersFilter(t *testing.T) {
	s, rec := newDryStore(t)

	_, err := s.ListOrders(context.Background(), OrderFilter{WeekStart: "2024-01-07", Status: models.OrderStatusConfirmed})
	require.NoError(t, err)
	stmt := rec.find(t, `SELECT * FROM "orders"`)
	assert.Contains(t, stmt, "scheduled_week_start = '2024-01-07'")
	assert.Contains(t, stmt, "status = 'confirmed'")
	assert.Contains(t, stmt, "ORDER BY created_at DESC")
	assert.Contains(t, stmt, "LIMIT 50")

	s, rec = newDryStore(t)
	_, err = s.ListOrders(context.Background(), OrderFilter{Limit: 10})
	require.NoError(t, err)
	stmt = rec.find(t, `SELECT * FROM "orders"`)
	assert.NotContains(t, stmt, "WHERE")
	assert.Contains(t, stmt, "LIMIT 10")
}

func TestGormStore_NoRowsAffectedIsNotFound(t *testing.T) {
	s, rec := newDryStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.UpdateOrderStatus(ctx, "missing", models.OrderStatusConfirmed), ErrNotFound)
	assert.ErrorIs(t, s.UpdatePaymentStatus(ctx, "missing", models.PaymentStatusPaid), ErrNotFound)
	assert.ErrorIs(t, s.DeleteMenuItem(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, s.ApproveAdmin(ctx, "ghost@example.com"), ErrNotFound)

	stmt := rec.find(t, `UPDATE "orders" SET "status"`)
	assert.Contains(t, stmt, "order_ref = 'missing'")
	// menu deletes are soft
	assert.Contains(t, rec.find(t, `UPDATE "menu_items" SET "deleted_at"`), "id = 'missing'")
}
