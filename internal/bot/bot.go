// Package bot is the transport-agnostic registration conversation: text in,
// reply out. A chat gateway (telegram, console) feeds HandleMessage one
// message at a time; the draft lives in the session store between messages.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/botflow"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/apiclient"
	"github.com/rs/zerolog"
)

const (
	CommandStart  = "/start"
	CommandCancel = "/cancel"
)

// API is the slice of the registration service the conversation needs.
// *apiclient.Client satisfies it.
type API interface {
	ListEvents(ctx context.Context, status string) ([]apiclient.Event, error)
	UpsertRegistration(ctx context.Context, params apiclient.UpsertRegistrationParams) (*apiclient.UpsertRegistrationResult, error)
	GenerateRegistrationQR(ctx context.Context, registrationID string) (*apiclient.RegistrationQRResult, error)
}

// Sessions persists one draft per chat. *botflow.SessionStore satisfies it.
type Sessions interface {
	Get(ctx context.Context, chatID int64) (*botflow.Draft, error)
	Save(ctx context.Context, chatID int64, draft *botflow.Draft) error
	Clear(ctx context.Context, chatID int64) error
}

type Bot struct {
	api      API
	sessions Sessions
	log      zerolog.Logger
}

func New(api API, sessions Sessions, log zerolog.Logger) *Bot {
	return &Bot{api: api, sessions: sessions, log: log}
}

// HandleMessage advances the chat's conversation by one input and returns the
// reply to send back.
func (b *Bot) HandleMessage(ctx context.Context, chatID int64, text string) (string, error) {
	text = strings.TrimSpace(text)

	if strings.EqualFold(text, CommandCancel) {
		if err := b.sessions.Clear(ctx, chatID); err != nil {
			return "", err
		}
		return "Registration cancelled.", nil
	}

	draft, err := b.sessions.Get(ctx, chatID)
	if err != nil {
		return "", err
	}

	if strings.EqualFold(text, CommandStart) || draft.State == botflow.StateIdle {
		return b.startRegistration(ctx, chatID)
	}

	switch draft.State {
	case botflow.StateSelectEvent:
		return b.selectEvent(ctx, chatID, draft, text)
	case botflow.StateName:
		return b.collectName(ctx, chatID, draft, text)
	case botflow.StateEmail:
		return b.collectEmail(ctx, chatID, draft, text)
	case botflow.StatePhone:
		return b.collectPhone(ctx, chatID, draft, text)
	case botflow.StateConfirm:
		return b.confirm(ctx, chatID, draft, text)
	default:
		return b.startRegistration(ctx, chatID)
	}
}

func (b *Bot) startRegistration(ctx context.Context, chatID int64) (string, error) {
	events, err := b.api.ListEvents(ctx, string(models.EventStatusOpen))
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load events")
		return "I could not load events from the API. Please try again soon.", nil
	}
	if len(events) == 0 {
		return "No open events are available right now.", nil
	}

	if err := b.sessions.Save(ctx, chatID, botflow.Start()); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Choose an event to register (reply with its id):\n")
	for _, ev := range events {
		fmt.Fprintf(&sb, "%s: %s (%s)\n", ev.ID, ev.Title, ev.Location)
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (b *Bot) selectEvent(ctx context.Context, chatID int64, draft *botflow.Draft, text string) (string, error) {
	events, err := b.api.ListEvents(ctx, string(models.EventStatusOpen))
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load events")
		return "I could not load events from the API. Please try again soon.", nil
	}

	var selected *apiclient.Event
	for i := range events {
		if events[i].ID == text {
			selected = &events[i]
			break
		}
	}
	if selected == nil {
		return "Please choose an event by replying with one of the listed ids.", nil
	}

	if err := draft.SelectEvent(selected.ID, selected.Title); err != nil {
		return "", err
	}
	if err := b.sessions.Save(ctx, chatID, draft); err != nil {
		return "", err
	}
	return fmt.Sprintf("Great, you selected: %s\nWhat is your full name?", selected.Title), nil
}

func (b *Bot) collectName(ctx context.Context, chatID int64, draft *botflow.Draft, text string) (string, error) {
	if err := draft.SetName(text); err != nil {
		if errors.Is(err, botflow.ErrNameTooShort) {
			return "Please enter a valid name.", nil
		}
		return "", err
	}
	if err := b.sessions.Save(ctx, chatID, draft); err != nil {
		return "", err
	}
	return "Thanks. What is your email address?", nil
}

func (b *Bot) collectEmail(ctx context.Context, chatID int64, draft *botflow.Draft, text string) (string, error) {
	if err := draft.SetEmail(text); err != nil {
		return "That email looks invalid. Please enter a valid email.", nil
	}
	if err := b.sessions.Save(ctx, chatID, draft); err != nil {
		return "", err
	}
	return "Got it. What is your phone number?", nil
}

func (b *Bot) collectPhone(ctx context.Context, chatID int64, draft *botflow.Draft, text string) (string, error) {
	if err := draft.SetPhone(text); err != nil {
		return "Please enter a valid phone number.", nil
	}
	if err := b.sessions.Save(ctx, chatID, draft); err != nil {
		return "", err
	}

	summary := fmt.Sprintf(
		"Please confirm your registration details:\n\n"+
			"Event: %s\nName: %s\nEmail: %s\nPhone: %s\n\n"+
			"Reply yes to submit or no to abort.",
		draft.EventTitle, draft.FullName, draft.Email, draft.Phone,
	)
	return summary, nil
}

func (b *Bot) confirm(ctx context.Context, chatID int64, draft *botflow.Draft, text string) (string, error) {
	switch strings.ToLower(text) {
	case "yes", "confirm":
	case "no", "cancel":
		if err := b.sessions.Clear(ctx, chatID); err != nil {
			return "", err
		}
		return "Registration cancelled.", nil
	default:
		return "Please reply yes to submit or no to abort.", nil
	}

	if err := draft.Complete(); err != nil {
		if clearErr := b.sessions.Clear(ctx, chatID); clearErr != nil {
			return "", clearErr
		}
		return "Missing registration details. Please run /start again.", nil
	}

	result, err := b.api.UpsertRegistration(ctx, apiclient.UpsertRegistrationParams{
		EventID:        draft.EventID,
		TelegramUserID: chatID,
		FullName:       draft.FullName,
		Email:          draft.Email,
		Phone:          draft.Phone,
	})
	if err != nil {
		return b.registrationFailed(ctx, chatID, err)
	}

	qr, err := b.api.GenerateRegistrationQR(ctx, result.RegistrationID)
	if err != nil {
		return b.registrationFailed(ctx, chatID, err)
	}

	if err := b.sessions.Clear(ctx, chatID); err != nil {
		return "", err
	}

	b.log.Info().
		Int64("chat_id", chatID).
		Str("registration_id", result.RegistrationID).
		Str("outcome", result.Status).
		Msg("registration submitted")

	return fmt.Sprintf(
		"Registration successful.\nEvent: %s\nRegistration ID: %s\nShow this QR code at check-in.\nQR Token: %s",
		draft.EventTitle, result.RegistrationID, qr.QRToken,
	), nil
}

func (b *Bot) registrationFailed(ctx context.Context, chatID int64, err error) (string, error) {
	if clearErr := b.sessions.Clear(ctx, chatID); clearErr != nil {
		return "", clearErr
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return "Registration failed: " + apiErr.Message, nil
	}
	b.log.Error().Err(err).Int64("chat_id", chatID).Msg("registration request failed")
	return "Could not reach registration service right now. Please try again.", nil
}
