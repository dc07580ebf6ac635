package models

import "time"

// Subscriber is a weekly-menu mailing list signup.
type Subscriber struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	Email             string    `gorm:"index;not null" json:"email"`
	Phone             string    `json:"phone,omitempty"`
	ContactPreference string    `gorm:"type:VARCHAR(10);default:'email'" json:"contact_preference"`
	SMSConsent        bool      `json:"sms_consent"`
	Source            string    `gorm:"default:'web'" json:"source"`
	CreatedAt         time.Time `json:"created_at"`
}

func (Subscriber) TableName() string { return "menu_signups" }
