package models

import "time"

type EventStatus string

const (
	EventStatusOpen   EventStatus = "OPEN"
	EventStatusClosed EventStatus = "CLOSED"
)

// Event rows are owned by the external admin/seed tooling. Registration and
// check-in only ever read them.
type Event struct {
	ID        string      `gorm:"primaryKey;size:50" json:"id"`
	Title     string      `gorm:"size:200;not null" json:"title"`
	StartTime time.Time   `gorm:"not null" json:"start_time"`
	Location  string      `gorm:"size:200;not null" json:"location"`
	Capacity  int         `gorm:"not null;default:0" json:"capacity"`
	Status    EventStatus `gorm:"size:20;not null;default:'OPEN'" json:"status"`
}
