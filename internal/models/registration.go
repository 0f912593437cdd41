package models

import "time"

// Registration binds one attendee identity to one event. Email and phone are
// stored normalized so the unique indexes compare canonical forms.
// Uniqueness per event is enforced by the indexes created in pkg/database:
// (event_id, telegram_user_id), (event_id, email), (event_id, phone).
type Registration struct {
	RegistrationID string    `gorm:"primaryKey;size:64" json:"registration_id"`
	EventID        string    `gorm:"size:50;not null;index" json:"event_id"`
	TelegramUserID int64     `gorm:"not null;index" json:"telegram_user_id"`
	FullName       string    `gorm:"size:120;not null" json:"full_name"`
	Email          string    `gorm:"size:180;not null" json:"email"`
	Phone          string    `gorm:"size:40;not null" json:"phone"`
	QRToken        *string   `gorm:"column:qr_token" json:"qr_token,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
