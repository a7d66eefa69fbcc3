package attendance

import (
	"net/http"
	"strconv"
	"time"

	"hrm-core/internal/shared/apperror"
	"hrm-core/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// CheckIn accepts a scanned token from the station and records the check-in.
func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), req.Token, time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Status answers "has this employee checked in today" for a given date.
func (h *Handler) Status(c *gin.Context) {
	employeeID, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil || employeeID <= 0 {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "Invalid employee id", nil)
		return
	}

	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("Date"))
		return
	}

	resp, err := h.service.Status(c.Request.Context(), employeeID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SeedDay(c *gin.Context) {
	var req SeedDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeServiceError(c, apperror.InvalidField("Date"))
		return
	}

	seeded, err := h.service.SeedDay(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, SeedDayResponse{
		Date:   req.Date,
		Seeded: seeded,
	}, nil)
}
