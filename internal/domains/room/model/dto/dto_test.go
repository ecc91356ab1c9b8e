package dto_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"kingdom/internal/domains/room/model"
	"kingdom/internal/domains/room/model/dto"
)

func TestCreateRoomRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	req := dto.CreateRoomRequest{
		RoomNumber:    "101",
		RoomType:      model.TypeDeluxe,
		Capacity:      2,
		PackageTier:   model.PackagePremium,
		PricePerNight: decimal.RequireFromString("100.00"),
	}

	room := req.ToModel("admin-1", now)

	assert.NotEmpty(t, room.ID)
	assert.Equal(t, model.StatusAvailable, room.Status)
	assert.Equal(t, "101", room.RoomNumber)
	assert.True(t, decimal.NewFromInt(100).Equal(room.PricePerNight))
	assert.Equal(t, now, room.CreatedAt)
	assert.Equal(t, "admin-1", room.ModifiedBy)

	req.Status = model.StatusMaintenance
	assert.Equal(t, model.StatusMaintenance, req.ToModel("admin-1", now).Status)
}

func TestFilter_ToFilterGroup(t *testing.T) {
	minCap := 3
	minPrice := decimal.NewFromInt(50)
	maxPrice := decimal.NewFromInt(150)

	group := dto.Filter{
		RoomType:    model.TypeVIP,
		Status:      model.StatusAvailable,
		MinCapacity: &minCap,
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
	}.ToFilterGroup()

	where, args := group.GetWhereClause()

	assert.Equal(t,
		"(rooms.room_type = :room_type AND rooms.status = :status AND rooms.capacity >= :capacity AND rooms.price_per_night >= :min_price AND rooms.price_per_night <= :max_price)",
		where,
	)
	assert.Equal(t, model.TypeVIP, args["room_type"])
	assert.Equal(t, 3, args["capacity"])
	assert.Equal(t, minPrice, args["min_price"])
	assert.Equal(t, maxPrice, args["max_price"])

	empty := dto.Filter{}.ToFilterGroup()
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}

func TestGetRoomsResponse_FromModels(t *testing.T) {
	var res dto.GetRoomsResponse

	res.FromModels([]model.Room{{ID: "r1"}, {ID: "r2"}}, 25, 10)

	assert.Len(t, res.Rooms, 2)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 25, res.TotalData)
}
