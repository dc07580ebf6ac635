package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/junaidrashid-git/rivaleats-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const defaultOrderLimit = 50

// GormStore implements every store interface on postgres.
type GormStore struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the schema.
func Open(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	s := NewGormStore(db)
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	log.Println("✅ Database connected and migrated")
	return s, nil
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(
		&models.Order{},
		&models.OrderItem{},
		&models.MenuItem{},
		&models.Subscriber{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// -------- Orders --------

func (s *GormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		return nil
	})
}

func (s *GormStore) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := s.db.WithContext(ctx).Preload("Items").Order("created_at DESC")
	if filter.WeekStart != "" {
		q = q.Where("scheduled_week_start = ?", filter.WeekStart)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultOrderLimit
	}
	var orders []models.Order
	if err := q.Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *GormStore) GetOrder(ctx context.Context, ref string) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").Where("order_ref = ?", ref).First(&order).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (s *GormStore) UpdateOrderStatus(ctx context.Context, ref string, status models.OrderStatus) error {
	return affected(s.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_ref = ?", ref).Update("status", status))
}

func (s *GormStore) UpdatePaymentStatus(ctx context.Context, ref string, status models.PaymentStatus) error {
	return affected(s.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_ref = ?", ref).Update("payment_status", status))
}

func (s *GormStore) DeleteOrder(ctx context.Context, ref string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("order_ref = ?", ref).First(&order).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
}

// -------- Menu --------

func (s *GormStore) ListMenuItems(ctx context.Context, activeOnly bool) ([]models.MenuItem, error) {
	q := s.db.WithContext(ctx).Order("section ASC").Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (s *GormStore) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *GormStore) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return affected(s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", item.ID).
		Select("name", "description", "section", "price", "image_url", "tags", "is_active").
		Updates(item))
}

func (s *GormStore) DeleteMenuItem(ctx context.Context, id string) error {
	return affected(s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id))
}

// UpsertMenuItems inserts or replaces items by id.
func (s *GormStore) UpsertMenuItems(ctx context.Context, items []models.MenuItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "section", "price", "image_url", "tags", "is_active", "updated_at", "deleted_at"}),
	}).Create(&items).Error
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// -------- Subscribers --------

func (s *GormStore) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

func (s *GormStore) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	var subs []models.Subscriber
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// -------- Admins --------

func (s *GormStore) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, notFound(err)
	}
	return &admin, nil
}

func (s *GormStore) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return s.db.WithContext(ctx).Create(admin).Error
}

func (s *GormStore) UpdateAdminProfile(ctx context.Context, email, name, picture string) error {
	return s.db.WithContext(ctx).Model(&models.Admin{}).Where("email = ?", email).
		Updates(models.Admin{Name: name, Picture: picture}).Error
}

func (s *GormStore) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (s *GormStore) ListPendingAdmins(ctx context.Context) ([]models.Admin, error) {
	var pending []models.Admin
	if err := s.db.WithContext(ctx).Where("approved = ?", false).Find(&pending).Error; err != nil {
		return nil, err
	}
	return pending, nil
}

func (s *GormStore) ApproveAdmin(ctx context.Context, email string) error {
	return affected(s.db.WithContext(ctx).Model(&models.Admin{}).
		Where("email = ?", email).Update("approved", true))
}

func (s *GormStore) RejectAdmin(ctx context.Context, email string) error {
	return affected(s.db.WithContext(ctx).Where("email = ?", email).Delete(&models.Admin{}))
}
