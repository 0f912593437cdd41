package dto

import (
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
)

type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
}

type EventStatsResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Capacity      int    `json:"capacity"`
	Status        string `json:"status"`
	Registrations int64  `json:"registration_count"`
	Checkins      int64  `json:"checkin_count"`
}

type RegistrationUpsertResponse struct {
	RegistrationID string `json:"registration_id"`
	Status         string `json:"status"`
}

// RegistrationResponse deliberately excludes the QR token; credentials are
// only served through the QR endpoints.
type RegistrationResponse struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	TelegramUserID int64     `json:"telegram_user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RegistrationQRResponse struct {
	RegistrationID string `json:"registration_id"`
	QRToken        string `json:"qr_token"`
}

type CheckinScanResponse struct {
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	FullName       string    `json:"full_name"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

type CheckinResponse struct {
	RegistrationID string    `json:"registration_id"`
	EventID        string    `json:"event_id"`
	Method         string    `json:"method"`
	CheckedInAt    time.Time `json:"checked_in_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		StartTime: e.StartTime,
		Location:  e.Location,
		Capacity:  e.Capacity,
		Status:    string(e.Status),
	}
}

func ToEventStatsResponse(s *service.EventStats) EventStatsResponse {
	return EventStatsResponse{
		ID:            s.Event.ID,
		Title:         s.Event.Title,
		Capacity:      s.Event.Capacity,
		Status:        string(s.Event.Status),
		Registrations: s.Registrations,
		Checkins:      s.Checkins,
	}
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		RegistrationID: r.RegistrationID,
		EventID:        r.EventID,
		TelegramUserID: r.TelegramUserID,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func ToCheckinScanResponse(res *service.ScanResult) CheckinScanResponse {
	message := "Check-in successful"
	if res.Status == service.ScanStatusAlreadyCheckedIn {
		message = "Guest already checked in"
	}
	return CheckinScanResponse{
		Status:         res.Status,
		Message:        message,
		RegistrationID: res.RegistrationID,
		EventID:        res.EventID,
		FullName:       res.FullName,
		CheckedInAt:    res.CheckedInAt,
	}
}

func ToCheckinResponse(c *models.CheckIn) CheckinResponse {
	return CheckinResponse{
		RegistrationID: c.RegistrationID,
		EventID:        c.EventID,
		Method:         c.Method,
		CheckedInAt:    c.CheckedInAt,
	}
}
