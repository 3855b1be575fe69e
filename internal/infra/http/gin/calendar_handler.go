package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	availabilityapp "rentwear/internal/app/handlers/availability"
	"rentwear/internal/app/queries"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/datekey"
	"rentwear/internal/domain/shared/daterange"
)

type CalendarHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

func (h CalendarHandler) Month(c *gin.Context) {
	if h.Queries == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("queries bus unavailable"))
		return
	}
	now := time.Now()
	year := parseIntWithDefault(c.Query("year"), now.Year())
	month := parseIntWithDefault(c.Query("month"), int(now.Month()))
	if month < 1 || month > 12 {
		h.respondWithError(c, http.StatusBadRequest, errors.New("month must be between 1 and 12"))
		return
	}

	query := availabilityapp.GetCalendarQuery{
		GarmentID: c.Param("id"),
		Year:      year,
		Month:     time.Month(month),
	}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.CalendarMonth](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Toggle(c *gin.Context) {
	if h.Commands == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("commands bus unavailable"))
		return
	}
	var req toggleDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}

	cmd := availabilityapp.ToggleDateCommand{
		CommandID:       uuid.NewString(),
		GarmentID:       c.Param("id"),
		Date:            req.Date,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[availabilityapp.ToggleDateCommand, *availabilityapp.ToggleDateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) GenerateRange(c *gin.Context) {
	if h.Commands == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("commands bus unavailable"))
		return
	}
	var req generateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}

	cmd := availabilityapp.GenerateRangeCommand{
		CommandID:       uuid.NewString(),
		GarmentID:       c.Param("id"),
		Start:           req.Start,
		End:             req.End,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[availabilityapp.GenerateRangeCommand, *availabilityapp.GenerateRangeResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) Exclude(c *gin.Context) {
	if h.Commands == nil {
		h.respondWithError(c, http.StatusServiceUnavailable, errors.New("commands bus unavailable"))
		return
	}
	var req excludeDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondWithError(c, http.StatusBadRequest, err)
		return
	}

	cmd := availabilityapp.ExcludeDateCommand{
		CommandID:  uuid.NewString(),
		GarmentID:  c.Param("id"),
		Date:       req.Date,
		RangeStart: req.RangeStart,
		RangeEnd:   req.RangeEnd,
	}
	result, err := commands.Dispatch[availabilityapp.ExcludeDateCommand, *availabilityapp.ExcludeDateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h CalendarHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domaincatalog.ErrGarmentNotFound):
		h.respondWithError(c, http.StatusNotFound, err)
	case errors.Is(err, domainavailability.ErrBookedDateImmutable),
		errors.Is(err, domainavailability.ErrPastDateImmutable),
		errors.Is(err, domainavailability.ErrAlreadyExcluded):
		h.respondWithError(c, http.StatusConflict, err)
	case errors.Is(err, datekey.ErrInvalidDate),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, domainavailability.ErrOutOfRange):
		h.respondWithError(c, http.StatusBadRequest, err)
	default:
		h.respondWithError(c, http.StatusInternalServerError, err)
	}
}

func (h CalendarHandler) respondWithError(c *gin.Context, status int, err error) {
	if h.Logger != nil {
		h.Logger.Error("calendar request failed", "status", status, "error", err, "path", c.FullPath(), "garment_id", c.Param("id"))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseIntWithDefault(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

type toggleDateRequest struct {
	Date string `json:"date"`
}

type generateRangeRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type excludeDateRequest struct {
	Date       string `json:"date"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`
}

var _ CalendarHTTP = CalendarHandler{}
