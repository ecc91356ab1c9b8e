package dto

import (
	"time"

	"kingdom/internal/domains/room/model"
	"kingdom/shared"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRoomRequest struct {
	RoomNumber    string          `json:"room_number"     validate:"required,max=10"`
	RoomType      string          `json:"room_type"       validate:"required,oneof=STANDARD DELUXE VIP FAMILY_SUITE"`
	Capacity      int             `json:"capacity"        validate:"required,gte=1"`
	PackageTier   string          `json:"package_tier"    validate:"required,oneof=BASIC PREMIUM LUXURY FAMILY"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"required,gt=0"`
	Status        string          `json:"status"          validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE OUT_OF_ORDER"`
	Description   *string         `json:"description"     validate:"omitempty,max=1000"`
	Amenities     *string         `json:"amenities"       validate:"omitempty,max=1000"`
}

func (c *CreateRoomRequest) ToModel(user string, now time.Time) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:            uuid.NewString(),
		RoomNumber:    c.RoomNumber,
		RoomType:      c.RoomType,
		Capacity:      c.Capacity,
		PackageTier:   c.PackageTier,
		PricePerNight: c.PricePerNight,
		Status:        status,
		Description:   c.Description,
		Amenities:     c.Amenities,
		Metadata:      gModel.NewMetadata(user, now),
	}
}

type UpdateRoomRequest struct {
	RoomNumber    string           `db:"room_number"     json:"room_number"     validate:"omitempty,max=10"`
	RoomType      string           `db:"room_type"       json:"room_type"       validate:"omitempty,oneof=STANDARD DELUXE VIP FAMILY_SUITE"`
	Capacity      *int             `db:"capacity"        json:"capacity"        validate:"omitempty,gte=1"`
	PackageTier   string           `db:"package_tier"    json:"package_tier"    validate:"omitempty,oneof=BASIC PREMIUM LUXURY FAMILY"`
	PricePerNight *decimal.Decimal `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	Status        string           `db:"status"          json:"status"          validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE OUT_OF_ORDER"`
	Description   *string          `db:"description"     json:"description"     validate:"omitempty,max=1000"`
	Amenities     *string          `db:"amenities"       json:"amenities"       validate:"omitempty,max=1000"`
}

type RoomResponse struct {
	ID            string          `json:"id"`
	RoomNumber    string          `json:"room_number"`
	RoomType      string          `json:"room_type"`
	Capacity      int             `json:"capacity"`
	PackageTier   string          `json:"package_tier"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	Status        string          `json:"status"`
	Description   *string         `json:"description,omitempty"`
	Amenities     *string         `json:"amenities,omitempty"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.Capacity = model.Capacity
	r.PackageTier = model.PackageTier
	r.PricePerNight = model.PricePerNight
	r.Status = model.Status
	r.Description = model.Description
	r.Amenities = model.Amenities
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

type RoomStatsResponse struct {
	TotalRooms     int     `json:"total_rooms"`
	AvailableRooms int     `json:"available_rooms"`
	OccupiedRooms  int     `json:"occupied_rooms"`
	OccupancyRate  float64 `json:"occupancy_rate"`
}

// Filter narrows room listings. Zero fields are ignored.
type Filter struct {
	RoomType    string
	PackageTier string
	Status      string
	MinCapacity *int
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.RoomType != "" {
		group = group.Add(eq(model.FieldRoomType, f.RoomType))
	}

	if f.PackageTier != "" {
		group = group.Add(eq(model.FieldPackageTier, f.PackageTier))
	}

	if f.Status != "" {
		group = group.Add(eq(model.FieldStatus, f.Status))
	}

	if f.MinCapacity != nil {
		group = group.Add(gDto.Filter{
			Field:    model.FieldCapacity,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.MinCapacity,
			Table:    model.TableName,
		})
	}

	if f.MinPrice != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "min_price",
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    *f.MinPrice,
			Table:    model.TableName,
		})
	}

	if f.MaxPrice != nil {
		group = group.Add(gDto.Filter{
			ArgName:  "max_price",
			Field:    model.FieldPricePerNight,
			Operator: gDto.FilterOperatorLessEq,
			Value:    *f.MaxPrice,
			Table:    model.TableName,
		})
	}

	return group
}

func eq(field, value string) gDto.Filter {
	return gDto.Filter{
		Field:    field,
		Operator: gDto.FilterOperatorEq,
		Value:    value,
		Table:    model.TableName,
	}
}
