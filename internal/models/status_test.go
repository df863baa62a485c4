package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(20)
	require.NoError(t, err)
	assert.Equal(t, StatusCooking, s)

	_, err = ParseStatus(99)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = ParseStatus(-1)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// Codes inside a gap are just as unknown as codes outside the range
	_, err = ParseStatus(5)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), "status %d should be valid", int(s))
	}

	assert.False(t, Status(3).Valid())
	assert.False(t, Status(100).Valid())
}

func TestAllStatusesOrdered(t *testing.T) {
	statuses := AllStatuses()
	require.Len(t, statuses, 16)

	for i := 1; i < len(statuses); i++ {
		assert.Less(t, int(statuses[i-1]), int(statuses[i]))
	}

	assert.Equal(t, StatusClientNew, statuses[0])
	assert.Equal(t, StatusRated, statuses[len(statuses)-1])
}

func TestStatusView(t *testing.T) {
	view := StatusCooking.View()
	assert.Equal(t, 20, view.Value)
	assert.Equal(t, "COOKING", view.Name)
	assert.NotEmpty(t, view.Description)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "CLIENT_NEW", StatusClientNew.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}
