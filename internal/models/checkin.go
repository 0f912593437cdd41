package models

import "time"

// CheckIn records attendance exactly once per registration. The unique index
// on registration_id is the serialization point for concurrent scans.
type CheckIn struct {
	ID             string    `gorm:"primaryKey;size:36" json:"id"`
	RegistrationID string    `gorm:"size:64;not null" json:"registration_id"`
	EventID        string    `gorm:"size:50;not null;index" json:"event_id"`
	Method         string    `gorm:"size:40;not null" json:"method"`
	CheckedInAt    time.Time `gorm:"not null" json:"checked_in_at"`
}
