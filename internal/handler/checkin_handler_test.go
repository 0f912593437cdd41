package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/dto"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCheckinRoutes(svc service.CheckinService) *echo.Echo {
	e := newTestEcho()
	NewCheckinHandler(svc).RegisterRoutes(e)
	return e
}

func TestScanCheckedIn(t *testing.T) {
	scannedAt := time.Now().UTC().Truncate(time.Second)
	svc := &mockCheckinService{
		scanFn: func(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error) {
			assert.Equal(t, "evt_001", eventID)
			assert.Equal(t, "qr_reg_abc123_tok", qrToken)
			return &service.ScanResult{
				Status:         service.ScanStatusCheckedIn,
				RegistrationID: "reg_abc123",
				EventID:        eventID,
				FullName:       "Alice Tan",
				CheckedInAt:    scannedAt,
			}, nil
		},
	}
	e := setupCheckinRoutes(svc)

	rec := doRequest(e, http.MethodPost, "/checkins/scan",
		`{"event_id":"evt_001","qr_token":"qr_reg_abc123_tok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CheckinScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.ScanStatusCheckedIn, resp.Status)
	assert.Equal(t, "Check-in successful", resp.Message)
	assert.Equal(t, "reg_abc123", resp.RegistrationID)
}

func TestScanAlreadyCheckedIn(t *testing.T) {
	svc := &mockCheckinService{
		scanFn: func(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error) {
			return &service.ScanResult{
				Status:         service.ScanStatusAlreadyCheckedIn,
				RegistrationID: "reg_abc123",
				EventID:        eventID,
				FullName:       "Alice Tan",
				CheckedInAt:    time.Now().UTC(),
			}, nil
		},
	}
	e := setupCheckinRoutes(svc)

	rec := doRequest(e, http.MethodPost, "/checkins/scan",
		`{"event_id":"evt_001","qr_token":"qr_reg_abc123_tok"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.CheckinScanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, service.ScanStatusAlreadyCheckedIn, resp.Status)
	assert.Equal(t, "Guest already checked in", resp.Message)
}

func TestScanErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"token from another event", service.ErrTokenEventMismatch, http.StatusBadRequest},
		{"unknown event", service.ErrEventNotFound, http.StatusNotFound},
		{"invalid token", service.ErrInvalidQRToken, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockCheckinService{
				scanFn: func(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error) {
					return nil, tc.err
				},
			}
			e := setupCheckinRoutes(svc)

			rec := doRequest(e, http.MethodPost, "/checkins/scan",
				`{"event_id":"evt_001","qr_token":"qr_reg_abc123_tok"}`)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestScanValidation(t *testing.T) {
	svc := &mockCheckinService{
		scanFn: func(ctx context.Context, eventID, qrToken, method string) (*service.ScanResult, error) {
			t.Fatal("service must not be reached for an invalid payload")
			return nil, nil
		},
	}
	e := setupCheckinRoutes(svc)

	rec := doRequest(e, http.MethodPost, "/checkins/scan", `{"event_id":"evt_001"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/checkins/scan", `{"qr_token":"qr_reg_abc123_tok"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
