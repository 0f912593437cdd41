package handler

import (
	"errors"
	"net/http"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/dto"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type CheckinHandler struct {
	svc service.CheckinService
}

func NewCheckinHandler(svc service.CheckinService) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

func (h *CheckinHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkins/scan", h.Scan)
}

func (h *CheckinHandler) Scan(c echo.Context) error {
	var req dto.CheckinScanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.svc.Scan(c.Request().Context(), req.EventID, req.QRToken, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingEventID),
			errors.Is(err, service.ErrMissingQRToken),
			errors.Is(err, service.ErrTokenEventMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEventNotFound), errors.Is(err, service.ErrInvalidQRToken):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToCheckinScanResponse(result))
}
