package handlers

import (
	"net/http"
	"time"

	"bookable/middleware"
	"bookable/models"
	"bookable/services/scheduling"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler exposes booking and the appointment lifecycle.
type AppointmentHandler struct {
	Svc scheduling.SchedulingService
}

func NewAppointmentHandler(svc scheduling.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc}
}

type bookRequest struct {
	BusinessID string `json:"businessId" binding:"required"`
	CustomerID string `json:"customerId" binding:"required"`
	Start      string `json:"start" binding:"required"` // RFC3339
	Title      string `json:"title" binding:"required"`
	Notes      string `json:"notes"`
}

// Book books the slot starting at the requested instant.
func (h *AppointmentHandler) Book(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "field 'start' must be RFC3339")
		return
	}

	appt, err := h.Svc.BookAppointment(c.Request.Context(), scheduling.BookingRequest{
		BusinessID: req.BusinessID,
		CustomerID: req.CustomerID,
		Actor:      actor,
		Start:      start,
		Title:      req.Title,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

type updateRequest struct {
	Start  *string `json:"start"` // RFC3339
	End    *string `json:"end"`   // RFC3339
	Title  *string `json:"title"`
	Notes  *string `json:"notes"`
	Status *string `json:"status"`
}

// Update applies a partial appointment update.
func (h *AppointmentHandler) Update(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	changes := scheduling.AppointmentChanges{Title: req.Title, Notes: req.Notes}
	if req.Start != nil {
		t, err := time.Parse(time.RFC3339, *req.Start)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "field 'start' must be RFC3339")
			return
		}
		changes.Start = &t
	}
	if req.End != nil {
		t, err := time.Parse(time.RFC3339, *req.End)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "field 'end' must be RFC3339")
			return
		}
		changes.End = &t
	}
	if req.Status != nil {
		status := models.AppointmentStatus(*req.Status)
		switch status {
		case models.StatusPending, models.StatusConfirmed, models.StatusCancelled:
		default:
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown status")
			return
		}
		changes.Status = &status
	}

	appt, err := h.Svc.UpdateAppointment(c.Request.Context(), c.Param("id"), changes, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel applies the terminal transition. Repeat cancellations are
// idempotent.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "not authenticated")
		return
	}

	appt, err := h.Svc.CancelAppointment(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Get returns a single appointment.
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.Svc.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// List returns a business's appointments for a range, cancelled included.
func (h *AppointmentHandler) List(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	appts, err := h.Svc.ListAppointments(c.Request.Context(), c.Param("businessID"), rng)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
