package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuSection string

const (
	SectionBreakfast MenuSection = "breakfast"
	SectionDinner    MenuSection = "dinner"
)

// ParseMenuSection maps a string to a MenuSection.
func ParseMenuSection(s string) (MenuSection, bool) {
	switch sec := MenuSection(s); sec {
	case SectionBreakfast, SectionDinner:
		return sec, true
	}
	return "", false
}

// MenuItem is a dish offered on the weekly menu. A null price means
// "market price" and is shown without a number.
type MenuItem struct {
	ID          string              `gorm:"primaryKey;type:VARCHAR(64)" json:"id"`
	Name        string              `gorm:"not null" json:"name"`
	Description string              `gorm:"type:TEXT" json:"description"`
	Section     MenuSection         `gorm:"type:VARCHAR(20);index;not null" json:"section"`
	Price       decimal.NullDecimal `gorm:"type:NUMERIC(10,2)" json:"price"`
	ImageURL    string              `json:"image_url,omitempty"`
	Tags        []string            `gorm:"serializer:json" json:"tags"`
	IsActive    bool                `gorm:"index;not null" json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}
