package repository

import (
	"context"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	FindByID(ctx context.Context, id string) (*models.Event, error)
	FindByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByStatus(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Order("start_time ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
