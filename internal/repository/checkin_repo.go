package repository

import (
	"context"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"gorm.io/gorm"
)

type CheckinRepository interface {
	Create(ctx context.Context, checkin *models.CheckIn) error
	FindByRegistration(ctx context.Context, registrationID string) (*models.CheckIn, error)
	FindByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
}

type checkinRepository struct {
	db *gorm.DB
}

func NewCheckinRepository(db *gorm.DB) CheckinRepository {
	return &checkinRepository{db: db}
}

func (r *checkinRepository) Create(ctx context.Context, checkin *models.CheckIn) error {
	return r.db.WithContext(ctx).Create(checkin).Error
}

func (r *checkinRepository) FindByRegistration(ctx context.Context, registrationID string) (*models.CheckIn, error) {
	var checkin models.CheckIn
	err := r.db.WithContext(ctx).
		Where("registration_id = ?", registrationID).
		First(&checkin).Error
	if err != nil {
		return nil, err
	}
	return &checkin, nil
}

func (r *checkinRepository) FindByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error) {
	var checkins []models.CheckIn
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("checked_in_at ASC").
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

func (r *checkinRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CheckIn{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
