package handlers

import (
	"net/http"
	"time"

	"bookable/models"
	"bookable/services/scheduling"
	"bookable/utils"

	"github.com/gin-gonic/gin"
)

// dayPayload is the wire form of a day's hours, using "HH:MM" clock strings
// the way the availability form edits them.
type dayPayload struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open"`
	Close  string `json:"close"`
	Breaks []struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"breaks"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (p dayPayload) toModel() (models.DayAvailability, error) {
	day := models.DayAvailability{IsOpen: p.IsOpen}
	if !p.IsOpen {
		return day, nil
	}
	var err error
	if day.Open, err = utils.ParseClock(p.Open); err != nil {
		return day, err
	}
	if day.Close, err = utils.ParseClock(p.Close); err != nil {
		return day, err
	}
	for _, b := range p.Breaks {
		br := models.BreakInterval{}
		if br.Start, err = utils.ParseClock(b.Start); err != nil {
			return day, err
		}
		if br.End, err = utils.ParseClock(b.End); err != nil {
			return day, err
		}
		day.Breaks = append(day.Breaks, br)
	}
	return day, nil
}

// statusForCode maps engine error codes to HTTP statuses.
func statusForCode(code scheduling.ErrorCode) int {
	switch code {
	case scheduling.CodeInvalidInput:
		return http.StatusBadRequest
	case scheduling.CodePolicyViolation:
		return http.StatusUnprocessableEntity
	case scheduling.CodeConflict:
		return http.StatusConflict
	case scheduling.CodeNotFound:
		return http.StatusNotFound
	case scheduling.CodeUnauthorized:
		return http.StatusForbidden
	case scheduling.CodeBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	code := scheduling.CodeOf(err)
	if code == "" {
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
		return
	}
	utils.JSONError(c, statusForCode(code), string(code), err.Error())
}

func parseRange(c *gin.Context) (models.DateRange, bool) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'from' must be RFC3339")
		return models.DateRange{}, false
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "query parameter 'to' must be RFC3339")
		return models.DateRange{}, false
	}
	return models.DateRange{From: from.UTC(), To: to.UTC()}, true
}
