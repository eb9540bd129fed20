package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bookable/config"
	"bookable/models"
	"bookable/services/scheduling"
	"bookable/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the availability configuration and slot
// listing endpoints.
type AvailabilityHandler struct {
	Svc   scheduling.SchedulingService
	Cache *redis.Client // optional, caches slot listings briefly
}

func NewAvailabilityHandler(svc scheduling.SchedulingService, cache *redis.Client) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc, Cache: cache}
}

type setAvailabilityRequest struct {
	Week      map[string]dayPayload `json:"week" binding:"required"`
	Overrides map[string]dayPayload `json:"overrides"`
	Timezone  string                `json:"timezone"`

	MaxHoursPerDay  int  `json:"maxHoursPerDay"`
	MaxHoursPerWeek int  `json:"maxHoursPerWeek"`
	DurationMin     int  `json:"appointmentDurationMin"`
	BufferMin       int  `json:"bufferMin"`
	LeadTimeMin     int  `json:"leadTimeMin"`
	CancelWindowMin int  `json:"cancellationWindowMin"`
	AutoConfirm     bool `json:"autoConfirm"`
}

func (r setAvailabilityRequest) toModels() (models.WeekSchedule, map[string]models.DayAvailability, models.GlobalConstraints, error) {
	week := models.DefaultWeekSchedule()
	for name, payload := range r.Week {
		wd, ok := weekdayNames[name]
		if !ok {
			return week, nil, models.GlobalConstraints{}, fmt.Errorf("unknown weekday %q", name)
		}
		day, err := payload.toModel()
		if err != nil {
			return week, nil, models.GlobalConstraints{}, err
		}
		week[wd] = day
	}

	var overrides map[string]models.DayAvailability
	if len(r.Overrides) > 0 {
		overrides = make(map[string]models.DayAvailability, len(r.Overrides))
		for date, payload := range r.Overrides {
			day, err := payload.toModel()
			if err != nil {
				return week, nil, models.GlobalConstraints{}, err
			}
			overrides[date] = day
		}
	}

	gc := models.GlobalConstraints{
		MaxHoursPerDay:  r.MaxHoursPerDay,
		MaxHoursPerWeek: r.MaxHoursPerWeek,
		DurationMin:     r.DurationMin,
		BufferMin:       r.BufferMin,
		LeadTimeMin:     r.LeadTimeMin,
		CancelWindowMin: r.CancelWindowMin,
		AutoConfirm:     r.AutoConfirm,
	}
	return week, overrides, gc, nil
}

// SetAvailability commits a business's schedule and constraints as a whole.
func (h *AvailabilityHandler) SetAvailability(c *gin.Context) {
	businessID := c.Param("businessID")
	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	week, overrides, gc, err := req.toModels()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Svc.SetAvailability(c.Request.Context(), businessID, week, overrides, req.Timezone, gc); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"businessId": businessID, "updated": true})
}

// ValidateAvailability dry-runs schedule validation and returns every
// violation found.
func (h *AvailabilityHandler) ValidateAvailability(c *gin.Context) {
	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	week, overrides, _, err := req.toModels()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	errs := h.Svc.ValidateAvailability(week, overrides, req.Timezone)
	c.JSON(http.StatusOK, gin.H{"valid": len(errs) == 0, "errors": errs})
}

// ResolveDay answers the business's hours for one date.
func (h *AvailabilityHandler) ResolveDay(c *gin.Context) {
	businessID := c.Param("businessID")
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'date' must be YYYY-MM-DD")
		return
	}

	day, err := h.Svc.ResolveDay(c.Request.Context(), businessID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// ListAvailableSlots returns the bookable slots for a range. Listings are
// cached briefly; staleness is acceptable because booking re-validates
// inside the critical section.
func (h *AvailabilityHandler) ListAvailableSlots(c *gin.Context) {
	businessID := c.Param("businessID")
	rng, ok := parseRange(c)
	if !ok {
		return
	}

	cacheKey := fmt.Sprintf("slots:%s:%d:%d", businessID, rng.From.Unix(), rng.To.Unix())
	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	slots, err := h.Svc.ListAvailableSlots(c.Request.Context(), businessID, rng)
	if err != nil {
		respondError(c, err)
		return
	}

	body, err := json.Marshal(gin.H{"businessId": businessID, "slots": slots})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}
	if h.Cache != nil {
		ttl := time.Duration(config.AppConfig.SlotCacheTTLSeconds) * time.Second
		if err := h.Cache.Set(context.Background(), cacheKey, body, ttl).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache slot listing", zap.Error(err))
		}
	}
	c.Data(http.StatusOK, "application/json", body)
}
