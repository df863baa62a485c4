package handler

import (
	"net/http"
	"time"

	"github.com/pizza-nz/ordering-service/internal/api"
	"github.com/pizza-nz/ordering-service/internal/middleware"
	"github.com/pizza-nz/ordering-service/internal/models"
	"github.com/pizza-nz/ordering-service/internal/service"
)

// StatisticsHandler handles order statistics requests
type StatisticsHandler struct {
	statisticsService *service.StatisticsService
}

// NewStatisticsHandler creates a new statistics handler
func NewStatisticsHandler(statisticsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsService: statisticsService,
	}
}

// HandleStatistics returns aggregated order figures for a date range
func (h *StatisticsHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.MethodNotAllowed(w)
		return
	}

	staff, ok := middleware.GetStaffActor(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseStatisticsFilter(r)
	if err != nil {
		api.BadRequest(w, err.Error())
		return
	}

	stats, err := h.statisticsService.Get(r.Context(), staff.BusinessID(), filter)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, stats)
}

// parseStatisticsFilter reads start_date, end_date and interval query
// parameters. Dates default to the last 30 days, the interval to daily.
func parseStatisticsFilter(r *http.Request) (models.StatisticsFilter, error) {
	var filter models.StatisticsFilter
	var err error

	startDateStr := r.URL.Query().Get("start_date")
	if startDateStr == "" {
		filter.StartDate = time.Now().AddDate(0, 0, -30)
	} else {
		filter.StartDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return filter, models.ErrInvalidRequest
		}
	}

	endDateStr := r.URL.Query().Get("end_date")
	if endDateStr == "" {
		filter.EndDate = time.Now()
	} else {
		filter.EndDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return filter, models.ErrInvalidRequest
		}
	}

	intervalStr := r.URL.Query().Get("interval")
	if intervalStr == "" {
		filter.Interval = models.IntervalDaily
	} else {
		filter.Interval = models.StatisticsInterval(intervalStr)
	}

	return filter, nil
}
