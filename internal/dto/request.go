package dto

type RegistrationUpsertRequest struct {
	EventID        string `json:"event_id" validate:"required"`
	TelegramUserID int64  `json:"telegram_user_id" validate:"required"`
	FullName       string `json:"full_name" validate:"required,min=2,max=120"`
	Email          string `json:"email" validate:"required"`
	Phone          string `json:"phone" validate:"required"`
}

type CheckinScanRequest struct {
	EventID string `json:"event_id" validate:"required"`
	QRToken string `json:"qr_token" validate:"required"`
	Method  string `json:"method" validate:"omitempty,max=40"`
}
