// Package availability answers which bookings hold a room on given nights.
//
// Stays are half-open intervals [check_in, check_out): a guest leaving on the
// 15th does not conflict with one arriving on the 15th.
package availability

//go:generate go run go.uber.org/mock/mockgen -source=./availability.go -destination=./mocks/availability_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"kingdom/infras/otel"
	"kingdom/internal/domains/booking/model"
	"kingdom/internal/domains/booking/repository"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"

	"github.com/jmoiron/sqlx"
)

const (
	argStayStart = "stay_start"
	argStayEnd   = "stay_end"
	argOnDate    = "on_date"
	argExcludeID = "exclude_id"
	argCancelled = "cancelled"
)

type Checker interface {
	ActiveOn(ctx context.Context, date time.Time) ([]model.Booking, error)
	Overlapping(ctx context.Context, roomID string, stay model.Stay) ([]model.Booking, error)
	OverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, stay model.Stay, excludeID string) ([]model.Booking, error)
	IsAvailable(ctx context.Context, roomID string, stay model.Stay) (bool, error)
}

type checkerImpl struct {
	repo repository.Booking
	otel otel.Otel
}

func New(repo repository.Booking, otel otel.Otel) Checker {
	return &checkerImpl{
		repo: repo,
		otel: otel,
	}
}

// ActiveOn returns every booking whose stay covers date, whatever its status.
func (c *checkerImpl) ActiveOn(ctx context.Context, date time.Time) (res []model.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.ActiveOn")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = c.repo.GetAll(ctx, gDto.QueryParams{}, ActiveOnFilter(date))
	if err != nil {
		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return res, nil
}

// Overlapping returns the non-cancelled bookings of the room sharing a night with stay.
func (c *checkerImpl) Overlapping(ctx context.Context, roomID string, stay model.Stay) (res []model.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.Overlapping")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = c.repo.GetAll(ctx, gDto.QueryParams{}, OverlapFilter(roomID, stay, constant.Empty))
	if err != nil {
		return nil, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	return res, nil
}

// OverlappingTx is Overlapping read through tx. excludeID skips the booking being edited.
func (c *checkerImpl) OverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, stay model.Stay, excludeID string) (res []model.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.OverlappingTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = c.repo.GetAllTx(ctx, sqltx, gDto.QueryParams{}, OverlapFilter(roomID, stay, excludeID))
	if err != nil {
		return nil, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	return res, nil
}

func (c *checkerImpl) IsAvailable(ctx context.Context, roomID string, stay model.Stay) (bool, error) {
	bookings, err := c.Overlapping(ctx, roomID, stay)
	if err != nil {
		return false, err
	}

	return len(Conflicts(bookings, stay, constant.Empty)) == 0, nil
}

// Conflicts filters bookings down to those that block stay. It mirrors OverlapFilter so
// callers holding rows in memory reach the same answer as the query.
func Conflicts(bookings []model.Booking, stay model.Stay, excludeID string) []model.Booking {
	conflicts := []model.Booking{}

	for _, booking := range bookings {
		if booking.Status == model.StatusCancelled || (excludeID != "" && booking.ID == excludeID) {
			continue
		}

		if booking.Stay().Overlaps(stay) {
			conflicts = append(conflicts, booking)
		}
	}

	return conflicts
}

// ActiveOnFilter matches check_in <= date AND check_out > date.
func ActiveOnFilter(date time.Time) gDto.FilterGroup {
	day := date.Format(constant.DateOnly)

	return gDto.And(
		gDto.Filter{
			ArgName:  argOnDate,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    day,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argOnDate,
			Field:    model.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    day,
			Table:    model.TableName,
		},
	)
}

// OverlapFilter matches room_id = roomID AND check_in < stay.CheckOut AND check_out > stay.CheckIn
// AND status != CANCELLED.
func OverlapFilter(roomID string, stay model.Stay, excludeID string) gDto.FilterGroup {
	group := gDto.And(
		gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argStayEnd,
			Field:    model.FieldCheckInDate,
			Operator: gDto.FilterOperatorLess,
			Value:    stay.CheckOut.Format(constant.DateOnly),
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argStayStart,
			Field:    model.FieldCheckOutDate,
			Operator: gDto.FilterOperatorGreater,
			Value:    stay.CheckIn.Format(constant.DateOnly),
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  argCancelled,
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorNotEq,
			Value:    model.StatusCancelled,
			Table:    model.TableName,
		},
	)

	if excludeID != "" {
		group = group.Add(gDto.Filter{
			ArgName:  argExcludeID,
			Field:    model.FieldID,
			Operator: gDto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    model.TableName,
		})
	}

	return group
}
