// Package botflow models the bot's registration conversation as an explicit
// state machine with a typed scratch record, instead of ad-hoc per-session
// maps. The telegram transport drives it; every transition validates its
// input before advancing.
package botflow

import (
	"errors"
	"strings"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/identity"
)

type State string

const (
	StateIdle        State = "idle"
	StateSelectEvent State = "select_event"
	StateName        State = "name"
	StateEmail       State = "email"
	StatePhone       State = "phone"
	StateConfirm     State = "confirm"
)

var (
	ErrWrongState   = errors.New("input does not match conversation state")
	ErrNameTooShort = errors.New("full name must be at least 2 characters")
	ErrIncomplete   = errors.New("registration draft is incomplete")
)

// Draft is the scratch record collected across the conversation. It is
// serialized as-is into the session store.
type Draft struct {
	State      State  `json:"state"`
	EventID    string `json:"event_id,omitempty"`
	EventTitle string `json:"event_title,omitempty"`
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Start begins a fresh registration conversation.
func Start() *Draft {
	return &Draft{State: StateSelectEvent}
}

func (d *Draft) SelectEvent(eventID, eventTitle string) error {
	if d.State != StateSelectEvent {
		return ErrWrongState
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return ErrWrongState
	}
	d.EventID = eventID
	d.EventTitle = strings.TrimSpace(eventTitle)
	d.State = StateName
	return nil
}

func (d *Draft) SetName(raw string) error {
	if d.State != StateName {
		return ErrWrongState
	}
	name := strings.TrimSpace(raw)
	if len(name) < 2 {
		return ErrNameTooShort
	}
	d.FullName = name
	d.State = StateEmail
	return nil
}

// SetEmail validates and normalizes with the same rules the ledger applies,
// so the API never rejects input the bot accepted.
func (d *Draft) SetEmail(raw string) error {
	if d.State != StateEmail {
		return ErrWrongState
	}
	email, err := identity.NormalizeEmail(raw)
	if err != nil {
		return err
	}
	d.Email = email
	d.State = StatePhone
	return nil
}

func (d *Draft) SetPhone(raw string) error {
	if d.State != StatePhone {
		return ErrWrongState
	}
	phone, err := identity.NormalizePhone(raw)
	if err != nil {
		return err
	}
	d.Phone = phone
	d.State = StateConfirm
	return nil
}

// Complete checks the draft is ready to submit to the API.
func (d *Draft) Complete() error {
	if d.State != StateConfirm {
		return ErrWrongState
	}
	if d.EventID == "" || d.FullName == "" || d.Email == "" || d.Phone == "" {
		return ErrIncomplete
	}
	return nil
}

func (d *Draft) Reset() {
	*d = Draft{State: StateIdle}
}
