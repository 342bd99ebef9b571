package handler

import (
	"errors"
	"fmt"
	"net/http"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/service"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("events", h.List)
		router.GET("events/:slug", h.GetBySlug)
		router.POST("events", h.Create)
		router.PUT("events/:slug", h.UpdateBySlug)
	}
}

// UpdateEventRequest 更新活動請求，未提供的欄位不會被修改
type UpdateEventRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Overview    *string  `json:"overview"`
	Image       *string  `json:"image"`
	Venue       *string  `json:"venue"`
	Location    *string  `json:"location"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Mode        *string  `json:"mode"`
	Audience    *string  `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   *string  `json:"organizer"`
	Tags        []string `json:"tags"`
}

func (r UpdateEventRequest) toParams() model.UpdateEventParams {
	return model.UpdateEventParams{
		Title:       r.Title,
		Description: r.Description,
		Overview:    r.Overview,
		Image:       r.Image,
		Venue:       r.Venue,
		Location:    r.Location,
		Date:        r.Date,
		Time:        r.Time,
		Mode:        r.Mode,
		Audience:    r.Audience,
		Agenda:      r.Agenda,
		Organizer:   r.Organizer,
		Tags:        r.Tags,
	}
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Events fetched successfully", "events": events})
}

func (h *EventHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")
	event, err := h.service.GetBySlug(c, slug)
	if err != nil {
		h.handleError(c, err, "GetBySlug")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event fetched successfully", "event": event})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventParams
	if err := BindJson(c, &req); err != nil {
		return
	}
	created, err := h.service.Create(c, req)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) UpdateBySlug(c *gin.Context) {
	slug := c.Param("slug")
	var req UpdateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}
	params := req.toParams()
	if len(params.ChangedFields()) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "At least one field is required"})
		return
	}
	updated, err := h.service.UpdateBySlug(c, slug, params)
	if err != nil {
		h.handleError(c, err, "UpdateBySlug")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("Validation error")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation Error", "errors": verr.Fields})
	case errors.Is(err, apperrors.ErrInvalidSlug):
		log.Warn("Invalid slug")
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid slug format. Only lowercase letters, numbers, and hyphens are allowed",
		})
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("Event with slug '%s' not found", c.Param("slug"))})
	case errors.Is(err, apperrors.ErrSlugConflict):
		log.Warn("Slug conflict")
		c.JSON(http.StatusConflict, gin.H{"message": "An event with the same title already exists"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
	case errors.Is(err, apperrors.ErrConnectionAttempt):
		log.Error("Database unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database unavailable"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}
