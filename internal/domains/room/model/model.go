package model

import (
	"kingdom/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomNumber    = "room_number"
	FieldRoomType      = "room_type"
	FieldCapacity      = "capacity"
	FieldPackageTier   = "package_tier"
	FieldPricePerNight = "price_per_night"
	FieldStatus        = "status"
	FieldDescription   = "description"
	FieldAmenities     = "amenities"
)

const (
	TypeStandard    = "STANDARD"
	TypeDeluxe      = "DELUXE"
	TypeVIP         = "VIP"
	TypeFamilySuite = "FAMILY_SUITE"
)

const (
	PackageBasic   = "BASIC"
	PackagePremium = "PREMIUM"
	PackageLuxury  = "LUXURY"
	PackageFamily  = "FAMILY"
)

const (
	StatusAvailable   = "AVAILABLE"
	StatusOccupied    = "OCCUPIED"
	StatusMaintenance = "MAINTENANCE"
	StatusOutOfOrder  = "OUT_OF_ORDER"
)

// Validation tags shared by request DTOs and path parameters.
const (
	TagRoomType    = "oneof=STANDARD DELUXE VIP FAMILY_SUITE"
	TagPackageTier = "oneof=BASIC PREMIUM LUXURY FAMILY"
	TagStatus      = "oneof=AVAILABLE OCCUPIED MAINTENANCE OUT_OF_ORDER"
)

type Room struct {
	ID            string          `db:"id"`
	RoomNumber    string          `db:"room_number"`
	RoomType      string          `db:"room_type"`
	Capacity      int             `db:"capacity"`
	PackageTier   string          `db:"package_tier"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Status        string          `db:"status"`
	Description   *string         `db:"description"`
	Amenities     *string         `db:"amenities"`
	model.Metadata
}

// Bookable reports whether new bookings may be placed on the room.
func (r Room) Bookable() bool {
	return r.Status == StatusAvailable
}

// OccupancyRate is occupied / total * 100, or 0 when there are no rooms.
func OccupancyRate(occupied, total int) float64 {
	if total <= 0 {
		return 0
	}

	return float64(occupied) / float64(total) * 100
}
