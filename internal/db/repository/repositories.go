package repository

import (
	"github.com/pizza-nz/ordering-service/internal/db"
)

// Repositories provides access to all repository instances
type Repositories struct {
	User       *UserRepository
	Client     *ClientRepository
	Menu       *MenuRepository
	Order      *OrderRepository
	Delivery   *DeliveryRepository
	Statistics *StatisticsRepository
}

// NewRepositories creates a new repositories container
func NewRepositories(database *db.Postgres) *Repositories {
	return NewFactory(database.DB)
}
