package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/identity"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/repository"
	"github.com/NyuntSinHtet96/event-registeration-bot/monitoring"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/rabbitmq"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/token"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound        = errors.New("unknown event_id")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrDuplicateAttendee    = errors.New("telegram user already registered for this event")
	ErrDuplicateEmail       = errors.New("email already registered for this event")
	ErrDuplicatePhone       = errors.New("phone already registered for this event")
	ErrRegistrationConflict = errors.New("registration data conflicts with an existing attendee")
)

type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeUpdated UpsertOutcome = "updated"
)

type RegistrationService interface {
	// Upsert creates a registration for (eventID, telegramUserID) or updates
	// the attendee's existing one. Contact fields are normalized before any
	// uniqueness check or write.
	Upsert(ctx context.Context, eventID string, telegramUserID int64, fullName, email, phone string) (*models.Registration, UpsertOutcome, error)
	Get(ctx context.Context, registrationID string) (*models.Registration, error)
	// IssueQR mints the registration's credential token at most once and
	// re-serves it on every later call.
	IssueQR(ctx context.Context, registrationID string) (string, error)
}

type registrationService struct {
	regRepo   repository.RegistrationRepository
	eventRepo repository.EventRepository
	publisher *rabbitmq.Publisher
	log       zerolog.Logger
}

func NewRegistrationService(regRepo repository.RegistrationRepository, eventRepo repository.EventRepository, publisher *rabbitmq.Publisher, log zerolog.Logger) RegistrationService {
	return &registrationService{
		regRepo:   regRepo,
		eventRepo: eventRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *registrationService) Upsert(ctx context.Context, eventID string, telegramUserID int64, fullName, email, phone string) (*models.Registration, UpsertOutcome, error) {
	normEmail, err := identity.NormalizeEmail(email)
	if err != nil {
		return nil, "", err
	}
	normPhone, err := identity.NormalizePhone(phone)
	if err != nil {
		return nil, "", err
	}
	fullName = strings.TrimSpace(fullName)

	var (
		reg     *models.Registration
		outcome UpsertOutcome
	)

	err = s.regRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("find event: %w", err)
		}

		own, err := s.regRepo.FindByEventAndUser(ctx, tx, eventID, telegramUserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find registration by user: %w", err)
		}

		// Email conflicts are checked and reported before phone conflicts.
		// The attendee's own row never conflicts with itself.
		emailMatch, err := s.regRepo.FindByEventAndEmail(ctx, tx, eventID, normEmail)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find registration by email: %w", err)
		}
		if emailMatch != nil && (own == nil || emailMatch.RegistrationID != own.RegistrationID) {
			return ErrDuplicateEmail
		}

		phoneMatch, err := s.regRepo.FindByEventAndPhone(ctx, tx, eventID, normPhone)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find registration by phone: %w", err)
		}
		if phoneMatch != nil && (own == nil || phoneMatch.RegistrationID != own.RegistrationID) {
			return ErrDuplicatePhone
		}

		now := time.Now().UTC()

		if own != nil {
			// QR token is never reset by a profile update.
			own.FullName = fullName
			own.Email = normEmail
			own.Phone = normPhone
			own.UpdatedAt = now
			if err := s.regRepo.Save(ctx, tx, own); err != nil {
				return err
			}
			reg = own
			outcome = OutcomeUpdated
			return nil
		}

		registrationID, err := s.newRegistrationID(ctx)
		if err != nil {
			return err
		}

		row := &models.Registration{
			RegistrationID: registrationID,
			EventID:        eventID,
			TelegramUserID: telegramUserID,
			FullName:       fullName,
			Email:          normEmail,
			Phone:          normPhone,
			QRToken:        nil,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.regRepo.Create(ctx, tx, row); err != nil {
			return err
		}
		reg = row
		outcome = OutcomeCreated
		return nil
	})
	if err != nil {
		return nil, "", s.mapUpsertError(err)
	}

	monitoring.RegistrationUpserted(string(outcome))
	s.log.Info().
		Str("registration_id", reg.RegistrationID).
		Str("event_id", eventID).
		Str("outcome", string(outcome)).
		Msg("registration upserted")

	if s.publisher != nil {
		key := rabbitmq.KeyRegistrationCreated
		if outcome == OutcomeUpdated {
			key = rabbitmq.KeyRegistrationUpdated
		}
		_ = s.publisher.Publish(key, reg)
	}

	return reg, outcome, nil
}

// mapUpsertError converts a commit-time uniqueness violation (a concurrent
// writer beat our pre-checks) into the conflict matching the violated rule.
func (s *registrationService) mapUpsertError(err error) error {
	name, ok := repository.DuplicateConstraint(err)
	if !ok {
		return err
	}
	switch name {
	case repository.ConstraintEventUser:
		return ErrDuplicateAttendee
	case repository.ConstraintEventEmail:
		return ErrDuplicateEmail
	case repository.ConstraintEventPhone:
		return ErrDuplicatePhone
	default:
		return ErrRegistrationConflict
	}
}

func (s *registrationService) newRegistrationID(ctx context.Context) (string, error) {
	for {
		id, err := token.NewRegistrationID()
		if err != nil {
			return "", err
		}
		_, err = s.regRepo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}
		if err != nil {
			return "", fmt.Errorf("check registration id: %w", err)
		}
		// Collision: generate another one.
	}
}

func (s *registrationService) Get(ctx context.Context, registrationID string) (*models.Registration, error) {
	reg, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) IssueQR(ctx context.Context, registrationID string) (string, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return "", err
	}
	if reg.QRToken != nil && *reg.QRToken != "" {
		return *reg.QRToken, nil
	}

	qrToken, err := token.NewQRToken(registrationID)
	if err != nil {
		return "", err
	}

	claimed, err := s.regRepo.ClaimQRToken(ctx, registrationID, qrToken, time.Now().UTC())
	if err != nil {
		if _, dup := repository.DuplicateConstraint(err); !dup {
			return "", fmt.Errorf("claim qr token: %w", err)
		}
		claimed = false
	}
	if !claimed {
		// A concurrent caller won the conditional write; serve their token.
		current, err := s.regRepo.FindByID(ctx, registrationID)
		if err != nil {
			return "", fmt.Errorf("reread registration after lost claim: %w", err)
		}
		if current.QRToken == nil || *current.QRToken == "" {
			return "", fmt.Errorf("qr token claim lost but no token present for %s", registrationID)
		}
		return *current.QRToken, nil
	}

	monitoring.QRTokenIssued()
	s.log.Info().Str("registration_id", registrationID).Msg("qr token issued")
	return qrToken, nil
}
