package service

import (
	"context"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"gorm.io/gorm"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	findByIDFn     func(ctx context.Context, id string) (*models.Event, error)
	findByStatusFn func(ctx context.Context, status models.EventStatus) ([]models.Event, error)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*models.Event, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) FindByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	if m.findByStatusFn != nil {
		return m.findByStatusFn(ctx, status)
	}
	return nil, nil
}

// --- Mock RegistrationRepository ---

type mockRegistrationRepo struct {
	createFn              func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	saveFn                func(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	findByIDFn            func(ctx context.Context, id string) (*models.Registration, error)
	findByEventAndUserFn  func(ctx context.Context, tx *gorm.DB, eventID string, telegramUserID int64) (*models.Registration, error)
	findByEventAndEmailFn func(ctx context.Context, tx *gorm.DB, eventID, email string) (*models.Registration, error)
	findByEventAndPhoneFn func(ctx context.Context, tx *gorm.DB, eventID, phone string) (*models.Registration, error)
	findByQRTokenFn       func(ctx context.Context, qrToken string) (*models.Registration, error)
	claimQRTokenFn        func(ctx context.Context, id, qrToken string, now time.Time) (bool, error)
	countByEventFn        func(ctx context.Context, eventID string) (int64, error)
}

func (m *mockRegistrationRepo) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *mockRegistrationRepo) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, reg)
	}
	return nil
}

func (m *mockRegistrationRepo) Save(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, tx, reg)
	}
	return nil
}

func (m *mockRegistrationRepo) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID string, telegramUserID int64) (*models.Registration, error) {
	if m.findByEventAndUserFn != nil {
		return m.findByEventAndUserFn(ctx, tx, eventID, telegramUserID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) FindByEventAndEmail(ctx context.Context, tx *gorm.DB, eventID, email string) (*models.Registration, error) {
	if m.findByEventAndEmailFn != nil {
		return m.findByEventAndEmailFn(ctx, tx, eventID, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) FindByEventAndPhone(ctx context.Context, tx *gorm.DB, eventID, phone string) (*models.Registration, error) {
	if m.findByEventAndPhoneFn != nil {
		return m.findByEventAndPhoneFn(ctx, tx, eventID, phone)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) FindByQRToken(ctx context.Context, qrToken string) (*models.Registration, error) {
	if m.findByQRTokenFn != nil {
		return m.findByQRTokenFn(ctx, qrToken)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) ClaimQRToken(ctx context.Context, id, qrToken string, now time.Time) (bool, error) {
	if m.claimQRTokenFn != nil {
		return m.claimQRTokenFn(ctx, id, qrToken, now)
	}
	return true, nil
}

func (m *mockRegistrationRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if m.countByEventFn != nil {
		return m.countByEventFn(ctx, eventID)
	}
	return 0, nil
}

// --- Mock CheckinRepository ---

type mockCheckinRepo struct {
	createFn             func(ctx context.Context, checkin *models.CheckIn) error
	findByRegistrationFn func(ctx context.Context, registrationID string) (*models.CheckIn, error)
	findByEventFn        func(ctx context.Context, eventID string) ([]models.CheckIn, error)
	countByEventFn       func(ctx context.Context, eventID string) (int64, error)
}

func (m *mockCheckinRepo) Create(ctx context.Context, checkin *models.CheckIn) error {
	if m.createFn != nil {
		return m.createFn(ctx, checkin)
	}
	return nil
}

func (m *mockCheckinRepo) FindByRegistration(ctx context.Context, registrationID string) (*models.CheckIn, error) {
	if m.findByRegistrationFn != nil {
		return m.findByRegistrationFn(ctx, registrationID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCheckinRepo) FindByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error) {
	if m.findByEventFn != nil {
		return m.findByEventFn(ctx, eventID)
	}
	return nil, nil
}

func (m *mockCheckinRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	if m.countByEventFn != nil {
		return m.countByEventFn(ctx, eventID)
	}
	return 0, nil
}

// openEventRepo returns an event repo that knows one open event.
func openEventRepo(id string) *mockEventRepo {
	return &mockEventRepo{
		findByIDFn: func(ctx context.Context, got string) (*models.Event, error) {
			if got == id {
				return &models.Event{ID: id, Title: "Test Event", Status: models.EventStatusOpen}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
}
