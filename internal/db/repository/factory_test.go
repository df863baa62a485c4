package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pizza-nz/ordering-service/internal/db"
)

func TestNewFactoryWiresEveryRepository(t *testing.T) {
	repos := NewFactory(nil)

	assert.NotNil(t, repos.User)
	assert.NotNil(t, repos.Client)
	assert.NotNil(t, repos.Menu)
	assert.NotNil(t, repos.Order)
	assert.NotNil(t, repos.Delivery)
	assert.NotNil(t, repos.Statistics)
}

func TestNewRepositoriesDelegatesToFactory(t *testing.T) {
	repos := NewRepositories(&db.Postgres{})

	assert.NotNil(t, repos.Order)
	assert.NotNil(t, repos.Statistics)
}
