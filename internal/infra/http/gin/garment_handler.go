package ginserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	garmentapp "rentwear/internal/app/handlers/garments"
	"rentwear/internal/app/queries"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
)

type GarmentHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

func (h GarmentHandler) Create(c *gin.Context) {
	if h.Commands == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("commands bus unavailable"))
		return
	}
	var req garmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}

	cmd := garmentapp.CreateGarmentCommand{
		CommandID:       uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Sizes:           req.Sizes,
		DailyRateCents:  req.DailyRateCents,
		AvailableDates:  req.AvailableDates,
		ExcludedDates:   req.ExcludedDates,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[garmentapp.CreateGarmentCommand, *garmentapp.CreateGarmentResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/v1/garments/%s", result.GarmentID))
	c.JSON(http.StatusCreated, result)
}

func (h GarmentHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("queries bus unavailable"))
		return
	}
	query := garmentapp.GetGarmentQuery{GarmentID: c.Param("id")}
	result, err := queries.Ask[garmentapp.GetGarmentQuery, dto.Garment](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h GarmentHandler) Update(c *gin.Context) {
	if h.Commands == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("commands bus unavailable"))
		return
	}
	var req garmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}

	cmd := garmentapp.UpdateGarmentCommand{
		GarmentID:      c.Param("id"),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Sizes:          req.Sizes,
		DailyRateCents: req.DailyRateCents,
		AvailableDates: req.AvailableDates,
		ExcludedDates:  req.ExcludedDates,
	}
	result, err := commands.Dispatch[garmentapp.UpdateGarmentCommand, *garmentapp.UpdateGarmentResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h GarmentHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domaincatalog.ErrGarmentNotFound):
		h.respondWithError(c, http.StatusNotFound, err)
	case errors.Is(err, domainavailability.ErrEmptyAvailability):
		h.respondWithError(c, http.StatusUnprocessableEntity, err)
	case isGarmentValidationError(err):
		h.respondWithError(c, http.StatusBadRequest, err)
	default:
		h.respondWithError(c, http.StatusInternalServerError, err)
	}
}

func (h GarmentHandler) respondWithError(c *gin.Context, status int, err error) {
	if h.Logger != nil {
		h.Logger.Error("garment request failed", "status", status, "error", err, "path", c.FullPath())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func isGarmentValidationError(err error) bool {
	switch {
	case errors.Is(err, domaincatalog.ErrTitleRequired),
		errors.Is(err, domaincatalog.ErrDailyRate),
		errors.Is(err, domaincatalog.ErrSizesRequired),
		errors.Is(err, domaincatalog.ErrInvalidState),
		errors.Is(err, domaincatalog.ErrGarmentMissing),
		errors.Is(err, datekey.ErrInvalidDate):
		return true
	}
	return false
}

type garmentRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Sizes          []string `json:"sizes"`
	DailyRateCents int64    `json:"daily_rate_cents"`
	AvailableDates string   `json:"available_dates"`
	ExcludedDates  string   `json:"excluded_dates"`
}

var _ GarmentHTTP = GarmentHandler{}
