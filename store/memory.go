package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/junaidrashid-git/rivaleats-api/models"
)

// MemoryStore is an in-process implementation of every store interface.
// It backs handler tests and local runs without postgres.
type MemoryStore struct {
	mu          sync.Mutex
	nextID      uint
	orders      []models.Order
	menu        map[string]models.MenuItem
	subscribers []models.Subscriber
	admins      map[string]models.Admin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		menu:   make(map[string]models.MenuItem),
		admins: make(map[string]models.Admin),
	}
}

func (m *MemoryStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) CreateOrder(_ context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = m.id()
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	for i := range order.Items {
		order.Items[i].ID = m.id()
		order.Items[i].OrderID = order.ID
	}
	m.orders = append(m.orders, *order)
	return nil
}

func (m *MemoryStore) ListOrders(_ context.Context, filter OrderFilter) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultOrderLimit
	}
	var out []models.Order
	for i := len(m.orders) - 1; i >= 0 && len(out) < limit; i-- {
		o := m.orders[i]
		if filter.WeekStart != "" && o.ScheduledWeekStart != filter.WeekStart {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *MemoryStore) find(ref string) int {
	for i, o := range m.orders {
		if o.OrderRef == ref {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) GetOrder(_ context.Context, ref string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(ref)
	if i < 0 {
		return nil, ErrNotFound
	}
	o := m.orders[i]
	return &o, nil
}

func (m *MemoryStore) UpdateOrderStatus(_ context.Context, ref string, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(ref)
	if i < 0 {
		return ErrNotFound
	}
	m.orders[i].Status = status
	m.orders[i].UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) UpdatePaymentStatus(_ context.Context, ref string, status models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(ref)
	if i < 0 {
		return ErrNotFound
	}
	m.orders[i].PaymentStatus = status
	m.orders[i].UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) DeleteOrder(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.find(ref)
	if i < 0 {
		return ErrNotFound
	}
	m.orders = append(m.orders[:i], m.orders[i+1:]...)
	return nil
}

func (m *MemoryStore) ListMenuItems(_ context.Context, activeOnly bool) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.MenuItem, 0, len(m.menu))
	for _, item := range m.menu {
		if activeOnly && !item.IsActive {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Section != out[j].Section {
			return out[i].Section < out[j].Section
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MemoryStore) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.menu[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *MemoryStore) CreateMenuItem(_ context.Context, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	m.menu[item.ID] = *item
	return nil
}

func (m *MemoryStore) UpdateMenuItem(_ context.Context, item *models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.menu[item.ID]
	if !ok {
		return ErrNotFound
	}
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	m.menu[item.ID] = *item
	return nil
}

func (m *MemoryStore) DeleteMenuItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.menu[id]; !ok {
		return ErrNotFound
	}
	delete(m.menu, id)
	return nil
}

func (m *MemoryStore) UpsertMenuItems(_ context.Context, items []models.MenuItem) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for _, item := range items {
		if existing, ok := m.menu[item.ID]; ok {
			item.CreatedAt = existing.CreatedAt
		} else {
			item.CreatedAt = now
		}
		item.UpdatedAt = now
		m.menu[item.ID] = item
	}
	return len(items), nil
}

func (m *MemoryStore) CreateSubscriber(_ context.Context, s *models.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = m.id()
	s.CreatedAt = time.Now()
	m.subscribers = append(m.subscribers, *s)
	return nil
}

func (m *MemoryStore) ListSubscribers(_ context.Context) ([]models.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Subscriber, len(m.subscribers))
	for i, s := range m.subscribers {
		out[len(out)-1-i] = s
	}
	return out, nil
}

func (m *MemoryStore) FindAdminByEmail(_ context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (m *MemoryStore) CreateAdmin(_ context.Context, admin *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	admin.ID = m.id()
	admin.CreatedAt = time.Now()
	m.admins[admin.Email] = *admin
	return nil
}

func (m *MemoryStore) UpdateAdminProfile(_ context.Context, email, name, picture string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		return ErrNotFound
	}
	if name != "" {
		a.Name = name
	}
	if picture != "" {
		a.Picture = picture
	}
	m.admins[email] = a
	return nil
}

func (m *MemoryStore) ListAdmins(_ context.Context) ([]models.Admin, error) {
	return m.filterAdmins(func(models.Admin) bool { return true }), nil
}

func (m *MemoryStore) ListPendingAdmins(_ context.Context) ([]models.Admin, error) {
	return m.filterAdmins(func(a models.Admin) bool { return !a.Approved }), nil
}

func (m *MemoryStore) filterAdmins(keep func(models.Admin) bool) []models.Admin {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Admin
	for _, a := range m.admins {
		if keep(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MemoryStore) ApproveAdmin(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.admins[email]
	if !ok {
		return ErrNotFound
	}
	a.Approved = true
	m.admins[email] = a
	return nil
}

func (m *MemoryStore) RejectAdmin(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.admins[email]; !ok {
		return ErrNotFound
	}
	delete(m.admins, email)
	return nil
}
