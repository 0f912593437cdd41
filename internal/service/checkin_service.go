package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/repository"
	"github.com/NyuntSinHtet96/event-registeration-bot/monitoring"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/rabbitmq"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrMissingEventID     = errors.New("event_id is required")
	ErrMissingQRToken     = errors.New("qr_token is required")
	ErrInvalidQRToken     = errors.New("invalid qr token")
	ErrTokenEventMismatch = errors.New("qr token does not belong to this event")
)

// DefaultCheckinMethod tags scans that arrive without a provenance method.
const DefaultCheckinMethod = "qr_scan"

const (
	ScanStatusCheckedIn        = "checked_in"
	ScanStatusAlreadyCheckedIn = "already_checked_in"
)

type ScanResult struct {
	Status         string
	RegistrationID string
	EventID        string
	FullName       string
	CheckedInAt    time.Time
}

type CheckinService interface {
	// Scan validates a credential against an event and records attendance at
	// most once per registration, absorbing concurrent duplicate scans.
	Scan(ctx context.Context, eventID, qrToken, method string) (*ScanResult, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error)
}

type checkinService struct {
	checkinRepo repository.CheckinRepository
	regRepo     repository.RegistrationRepository
	eventRepo   repository.EventRepository
	publisher   *rabbitmq.Publisher
	log         zerolog.Logger
}

func NewCheckinService(checkinRepo repository.CheckinRepository, regRepo repository.RegistrationRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher, log zerolog.Logger) CheckinService {
	return &checkinService{
		checkinRepo: checkinRepo,
		regRepo:     regRepo,
		eventRepo:   eventRepo,
		publisher:   publisher,
		log:         log,
	}
}

func (s *checkinService) Scan(ctx context.Context, eventID, qrToken, method string) (*ScanResult, error) {
	eventID = strings.TrimSpace(eventID)
	qrToken = strings.TrimSpace(qrToken)
	method = strings.TrimSpace(method)
	if eventID == "" {
		return nil, ErrMissingEventID
	}
	if qrToken == "" {
		return nil, ErrMissingQRToken
	}
	if method == "" {
		method = DefaultCheckinMethod
	}

	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	reg, err := s.regRepo.FindByQRToken(ctx, qrToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidQRToken
		}
		return nil, fmt.Errorf("find registration by token: %w", err)
	}

	if reg.EventID != eventID {
		return nil, ErrTokenEventMismatch
	}

	if existing, err := s.checkinRepo.FindByRegistration(ctx, reg.RegistrationID); err == nil {
		return s.alreadyCheckedIn(reg, existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find check-in: %w", err)
	}

	checkin := &models.CheckIn{
		ID:             uuid.NewString(),
		RegistrationID: reg.RegistrationID,
		EventID:        reg.EventID,
		Method:         method,
		CheckedInAt:    time.Now().UTC(),
	}
	if err := s.checkinRepo.Create(ctx, checkin); err != nil {
		if _, dup := repository.DuplicateConstraint(err); dup {
			// A concurrent scan inserted first. Downgrade to the idempotent
			// outcome with that row's timestamp.
			winner, rerr := s.checkinRepo.FindByRegistration(ctx, reg.RegistrationID)
			if rerr != nil {
				return nil, fmt.Errorf("reread check-in after duplicate insert: %w", rerr)
			}
			return s.alreadyCheckedIn(reg, winner), nil
		}
		return nil, fmt.Errorf("create check-in: %w", err)
	}

	monitoring.CheckinScanned(ScanStatusCheckedIn)
	s.log.Info().
		Str("registration_id", reg.RegistrationID).
		Str("event_id", reg.EventID).
		Str("method", method).
		Msg("attendee checked in")

	if s.publisher != nil {
		_ = s.publisher.Publish(rabbitmq.KeyCheckinRecorded, checkin)
	}

	return &ScanResult{
		Status:         ScanStatusCheckedIn,
		RegistrationID: reg.RegistrationID,
		EventID:        reg.EventID,
		FullName:       reg.FullName,
		CheckedInAt:    checkin.CheckedInAt,
	}, nil
}

func (s *checkinService) alreadyCheckedIn(reg *models.Registration, checkin *models.CheckIn) *ScanResult {
	monitoring.CheckinScanned(ScanStatusAlreadyCheckedIn)
	return &ScanResult{
		Status:         ScanStatusAlreadyCheckedIn,
		RegistrationID: reg.RegistrationID,
		EventID:        reg.EventID,
		FullName:       reg.FullName,
		CheckedInAt:    checkin.CheckedInAt,
	}
}

func (s *checkinService) ListByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return s.checkinRepo.FindByEvent(ctx, eventID)
}
