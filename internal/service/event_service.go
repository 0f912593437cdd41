package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/repository"
	"gorm.io/gorm"
)

type EventStats struct {
	Event         *models.Event
	Registrations int64
	Checkins      int64
}

type EventService interface {
	// ListEvents returns events with the given status ordered by start time.
	// An empty status returns everything.
	ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	Stats(ctx context.Context, eventID string) (*EventStats, error)
}

type eventService struct {
	eventRepo   repository.EventRepository
	regRepo     repository.RegistrationRepository
	checkinRepo repository.CheckinRepository
}

func NewEventService(eventRepo repository.EventRepository, regRepo repository.RegistrationRepository, checkinRepo repository.CheckinRepository) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		regRepo:     regRepo,
		checkinRepo: checkinRepo,
	}
}

func (s *eventService) ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	return s.eventRepo.FindByStatus(ctx, status)
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) Stats(ctx context.Context, eventID string) (*EventStats, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	registrations, err := s.regRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	checkins, err := s.checkinRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count check-ins: %w", err)
	}

	return &EventStats{
		Event:         event,
		Registrations: registrations,
		Checkins:      checkins,
	}, nil
}
