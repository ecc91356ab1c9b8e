package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kingdom/internal/domains/room/model"
)

func TestOccupancyRate(t *testing.T) {
	tests := []struct {
		name     string
		occupied int
		total    int
		want     float64
	}{
		{name: "no rooms", occupied: 0, total: 0, want: 0},
		{name: "none occupied", occupied: 0, total: 4, want: 0},
		{name: "half occupied", occupied: 2, total: 4, want: 50},
		{name: "one of three", occupied: 1, total: 3, want: 33.3333},
		{name: "all occupied", occupied: 5, total: 5, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, model.OccupancyRate(tt.occupied, tt.total), 0.001)
		})
	}
}

func TestRoom_Bookable(t *testing.T) {
	for _, status := range []string{model.StatusOccupied, model.StatusMaintenance, model.StatusOutOfOrder} {
		assert.False(t, model.Room{Status: status}.Bookable(), status)
	}

	assert.True(t, model.Room{Status: model.StatusAvailable}.Bookable())
}
