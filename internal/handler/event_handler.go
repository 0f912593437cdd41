package handler

import (
	"errors"
	"net/http"

	"github.com/NyuntSinHtet96/event-registeration-bot/internal/dto"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/models"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	eventSvc   service.EventService
	checkinSvc service.CheckinService
}

func NewEventHandler(eventSvc service.EventService, checkinSvc service.CheckinService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc, checkinSvc: checkinSvc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/events", h.ListEvents)
	e.GET("/events/:id/stats", h.GetEventStats)
	e.GET("/events/:id/checkins", h.ListEventCheckins)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	status := models.EventStatus(c.QueryParam("status"))
	if status == "" {
		status = models.EventStatusOpen
	}

	events, err := h.eventSvc.ListEvents(c.Request().Context(), status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEventStats(c echo.Context) error {
	stats, err := h.eventSvc.Stats(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventStatsResponse(stats))
}

func (h *EventHandler) ListEventCheckins(c echo.Context) error {
	checkins, err := h.checkinSvc.ListByEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CheckinResponse, len(checkins))
	for i, ci := range checkins {
		resp[i] = dto.ToCheckinResponse(&ci)
	}

	return c.JSON(http.StatusOK, resp)
}
