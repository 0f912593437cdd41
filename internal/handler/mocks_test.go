package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/middleware"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type mockRegistrationService struct {
	upsertFn  func(ctx context.Context, eventID string, telegramUserID int64, fullName, email, phone string) (*models.Registration, service.UpsertOutcome, error)
	getFn     func(ctx context.Context, registrationID string) (*models.Registration, error)
	issueQRFn func(ctx context.Context, registrationID string) (string, error)
}

func (m *mockRegistrationService) Upsert(ctx context.Context, eventID string, telegramUserID int64, fullName, email, phone string) (*models.Registration, service.UpsertOutcome, error) {
	return m.upsertFn(ctx, eventID, telegramUserID, fullName, email, phone)
}

func (m *mockRegistrationService) Get(ctx context.Context, registrationID string) (*models.Registration, error) {
	return m.getFn(ctx, registrationID)
}

func (m *mockRegistrationService) IssueQR(ctx context.Context, registrationID string) (string, error) {
	return m.issueQRFn(ctx, registrationID)
}

type mockCheckinService struct {
	scanFn        func(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error)
	listByEventFn func(ctx context.Context, eventID string) ([]models.CheckIn, error)
}

func (m *mockCheckinService) Scan(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error) {
	return m.scanFn(ctx, eventID, qrToken, method)
}

func (m *mockCheckinService) ListByEvent(ctx context.Context, eventID string) ([]models.CheckIn, error) {
	return m.listByEventFn(ctx, eventID)
}

type mockEventService struct {
	listEventsFn func(ctx context.Context, status models.EventStatus) ([]models.Event, error)
	getEventFn   func(ctx context.Context, id string) (*models.Event, error)
	statsFn      func(ctx context.Context, eventID string) (*service.EventStats, error)
}

func (m *mockEventService) ListEvents(ctx context.Context, status models.EventStatus) ([]models.Event, error) {
	return m.listEventsFn(ctx, status)
}

func (m *mockEventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	return m.getEventFn(ctx, id)
}

func (m *mockEventService) Stats(ctx context.Context, eventID string) (*service.EventStats, error) {
	return m.statsFn(ctx, eventID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = middleware.NewRequestValidator()
	return e
}

// doRequest runs a request through the echo router so routing, binding and
// the registered error handler all participate.
func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
