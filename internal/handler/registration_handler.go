package handler

import (
	"errors"
	"net/http"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/dto"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/identity"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/qrimage"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc service.RegistrationService
}

func NewRegistrationHandler(svc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/registrations", h.UpsertRegistration)
	e.GET("/registrations/:id", h.GetRegistration)
	e.POST("/registrations/:id/qr", h.GenerateQR)
	e.GET("/registrations/:id/qr.png", h.GenerateQRImage)
}

func (h *RegistrationHandler) UpsertRegistration(c echo.Context) error {
	var req dto.RegistrationUpsertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reg, outcome, err := h.svc.Upsert(c.Request().Context(), req.EventID, req.TelegramUserID, req.FullName, req.Email, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, identity.ErrInvalidEmail), errors.Is(err, identity.ErrInvalidPhone):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateEmail),
			errors.Is(err, service.ErrDuplicatePhone),
			errors.Is(err, service.ErrDuplicateAttendee),
			errors.Is(err, service.ErrRegistrationConflict):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.RegistrationUpsertResponse{
		RegistrationID: reg.RegistrationID,
		Status:         string(outcome),
	})
}

func (h *RegistrationHandler) GetRegistration(c echo.Context) error {
	reg, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) GenerateQR(c echo.Context) error {
	registrationID := c.Param("id")

	qrToken, err := h.svc.IssueQR(c.Request().Context(), registrationID)
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.RegistrationQRResponse{
		RegistrationID: registrationID,
		QRToken:        qrToken,
	})
}

func (h *RegistrationHandler) GenerateQRImage(c echo.Context) error {
	qrToken, err := h.svc.IssueQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRegistrationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	png, err := qrimage.PNG(qrToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not render qr image")
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
