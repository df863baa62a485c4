package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pizza-nz/ordering-service/internal/models"
)

// StatisticsRepository aggregates order figures per time bucket
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// truncUnit maps a statistics interval to a date_trunc unit
func truncUnit(interval models.StatisticsInterval) string {
	switch interval {
	case models.IntervalWeekly:
		return "week"
	case models.IntervalMonthly:
		return "month"
	default:
		return "day"
	}
}

// Get aggregates per-bucket order count, new client count, average order
// price, and average time to handover (order creation to the DELIVERED
// entry) for a business in [start, end].
func (r *StatisticsRepository) Get(
	ctx context.Context,
	businessID uuid.UUID,
	start, end time.Time,
	interval models.StatisticsInterval,
) ([]models.StatisticsPeriod, error) {
	query := `
		SELECT
			date_trunc($4, o.created_at) AS period,
			COUNT(o.id) AS orders_count,
			COALESCE((
				SELECT COUNT(c.id) FROM clients c
				WHERE c.user_id = $1
				  AND date_trunc($4, c.created_at) = date_trunc($4, o.created_at)
			), 0) AS new_clients_count,
			COALESCE(AVG(o.price), 0) AS avg_order_price,
			COALESCE(AVG(EXTRACT(EPOCH FROM (os.start_date - o.created_at))), 0) AS avg_order_time
		FROM orders o
		LEFT JOIN order_status os
			ON os.order_id = o.id AND os.status = $5
		WHERE o.user_id = $1
		  AND o.created_at BETWEEN $2 AND $3
		GROUP BY period
		ORDER BY period ASC
	`

	var periods []models.StatisticsPeriod
	err := r.db.SelectContext(ctx, &periods, query, businessID, start, end, truncUnit(interval), models.StatusDelivered)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	return periods, nil
}
