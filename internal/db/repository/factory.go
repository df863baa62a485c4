package repository

import (
	"github.com/jmoiron/sqlx"
)

// NewFactory creates a repositories container directly from a database
// handle, bypassing the db wrapper.
func NewFactory(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Client:     NewClientRepository(db),
		Menu:       NewMenuRepository(db),
		Order:      NewOrderRepository(db),
		Delivery:   NewDeliveryRepository(db),
		Statistics: NewStatisticsRepository(db),
	}
}
