package repository

import (
	"context"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	// Transaction runs fn atomically; the tx handle it passes must be used
	// for every read and write inside the upsert's read-then-write window.
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	Save(ctx context.Context, tx *gorm.DB, reg *models.Registration) error
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID string, telegramUserID int64) (*models.Registration, error)
	FindByEventAndEmail(ctx context.Context, tx *gorm.DB, eventID, email string) (*models.Registration, error)
	FindByEventAndPhone(ctx context.Context, tx *gorm.DB, eventID, phone string) (*models.Registration, error)
	FindByQRToken(ctx context.Context, qrToken string) (*models.Registration, error)

	// ClaimQRToken sets the token only when none is present yet. It reports
	// whether this caller won the write.
	ClaimQRToken(ctx context.Context, id, qrToken string, now time.Time) (bool, error)

	CountByEvent(ctx context.Context, eventID string) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *registrationRepository) Create(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) Save(ctx context.Context, tx *gorm.DB, reg *models.Registration) error {
	return tx.WithContext(ctx).Save(reg).Error
}

func (r *registrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.WithContext(ctx).First(&reg, "registration_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventAndUser(ctx context.Context, tx *gorm.DB, eventID string, telegramUserID int64) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("event_id = ? AND telegram_user_id = ?", eventID, telegramUserID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventAndEmail(ctx context.Context, tx *gorm.DB, eventID, email string) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("event_id = ? AND email = ?", eventID, email).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEventAndPhone(ctx context.Context, tx *gorm.DB, eventID, phone string) (*models.Registration, error) {
	var reg models.Registration
	err := tx.WithContext(ctx).
		Where("event_id = ? AND phone = ?", eventID, phone).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByQRToken(ctx context.Context, qrToken string) (*models.Registration, error) {
	var reg models.Registration
	err := r.db.WithContext(ctx).
		Where("qr_token = ?", qrToken).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) ClaimQRToken(ctx context.Context, id, qrToken string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("registration_id = ? AND qr_token IS NULL", id).
		Updates(map[string]interface{}{"qr_token": qrToken, "updated_at": now})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
