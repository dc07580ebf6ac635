package store

import (
	"context"
	"errors"

	"github.com/junaidrashid-git/rivaleats-api/models"
)

var ErrNotFound = errors.New("record not found")

// OrderFilter narrows ListOrders. Zero values mean "any".
type OrderFilter struct {
	WeekStart string
	Status    models.OrderStatus
	Limit     int
}

type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, ref string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, ref string, status models.PaymentStatus) error
	DeleteOrder(ctx context.Context, ref string) error
}

type MenuStore interface {
	ListMenuItems(ctx context.Context, activeOnly bool) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
	UpsertMenuItems(ctx context.Context, items []models.MenuItem) (int, error)
}

type SubscriberStore interface {
	CreateSubscriber(ctx context.Context, s *models.Subscriber) error
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

type AdminStore interface {
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	UpdateAdminProfile(ctx context.Context, email, name, picture string) error
	ListAdmins(ctx context.Context) ([]models.Admin, error)
	ListPendingAdmins(ctx context.Context) ([]models.Admin, error)
	ApproveAdmin(ctx context.Context, email string) error
	RejectAdmin(ctx context.Context, email string) error
}
