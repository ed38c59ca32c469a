package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/eventboard/backend/internal/model"
	"github.com/gin-gonic/gin"
)

type eventService interface {
	ListEvents(ctx context.Context, filter model.EventFilter) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, actorID string, req model.CreateEventRequest) (*model.Event, error)
	UpdateEvent(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

type EventHandler struct {
	svc eventService
}

func NewEventHandler(svc eventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Param title query string false "Case-insensitive title fragment"
// @Param location query string false "Case-insensitive location fragment"
// @Param categoryId query string false "Category ID"
// @Success 200 {array} model.Event
// @Failure 500 {object} model.ErrorResponse
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context(), model.EventFilter{
		Title:      c.Query("title"),
		Location:   c.Query("location"),
		CategoryID: c.Query("categoryId"),
	})
	if err != nil {
		writeError(c, err, "Event", "")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.Event
// @Failure 404 {object} model.ErrorResponse
// @Router /events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")
	event, err := h.svc.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Event", id)
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Create event
// @Description createdBy defaults to the authenticated user.
// @Tags events
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body model.CreateEventRequest true "Event"
// @Success 201 {object} model.Event
// @Failure 400,401,403 {object} model.ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c)
		return
	}

	var actorID string
	if identity := GetIdentity(c); identity != nil {
		actorID = identity.UserID
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), actorID, req)
	if err != nil {
		writeError(c, err, "Event", "")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Update event
// @Description Partial update; omitted fields keep their value.
// @Tags events
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path string true "Event ID"
// @Param request body model.UpdateEventRequest true "Fields to change"
// @Success 200 {object} model.Event
// @Failure 400,401,403,404 {object} model.ErrorResponse
// @Router /events/{id} [put]
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")

	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBadRequest(c)
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err, "Event", id)
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete event
// @Tags events
// @Produce json
// @Security TokenAuth
// @Param id path string true "Event ID"
// @Success 200 {object} model.MessageResponse
// @Failure 401,403,404 {object} model.ErrorResponse
// @Router /events/{id} [delete]
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.DeleteEvent(c.Request.Context(), id); err != nil {
		writeError(c, err, "Event", id)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: fmt.Sprintf("Event with id %s successfully deleted", id)})
}
