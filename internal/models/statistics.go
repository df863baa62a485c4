package models

import "time"

// StatisticsInterval is the bucketing granularity for order statistics.
type StatisticsInterval string

const (
	IntervalDaily   StatisticsInterval = "daily"
	IntervalWeekly  StatisticsInterval = "weekly"
	IntervalMonthly StatisticsInterval = "monthly"
)

// Valid reports whether i is a known interval.
func (i StatisticsInterval) Valid() bool {
	switch i {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
		return true
	}
	return false
}

// StatisticsPeriod is one time bucket of aggregated order figures.
type StatisticsPeriod struct {
	Period          time.Time `db:"period" json:"period"`
	OrdersCount     int       `db:"orders_count" json:"orders_count"`
	NewClientsCount int       `db:"new_clients_count" json:"new_clients_count"`
	AvgOrderPrice   float64   `db:"avg_order_price" json:"avg_order_price"`
	AvgOrderTime    float64   `db:"avg_order_time" json:"avg_order_time"`
}

// StatisticsTotals aggregates the period figures; averages are weighted by
// order count.
type StatisticsTotals struct {
	OrdersCount     int     `json:"orders_count"`
	NewClientsCount int     `json:"new_clients_count"`
	AvgOrderPrice   float64 `json:"avg_order_price"`
	AvgOrderTime    float64 `json:"avg_order_time"`
}

// Statistics is the aggregated response for a date range.
type Statistics struct {
	DateMin  string             `json:"date_min"`
	DateMax  string             `json:"date_max"`
	Interval StatisticsInterval `json:"interval"`
	Totals   StatisticsTotals   `json:"totals"`
	Periods  []StatisticsPeriod `json:"periods"`
}

// StatisticsFilter narrows the statistics query.
type StatisticsFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Interval  StatisticsInterval
}
