package failure_test

import (
	"errors"
	"fmt"
	"kingdom/shared/failure"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	assert.Equal(t, "test error message", f.Error())
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{name: "InvalidPageParam", failure: failure.InvalidPageParam, code: http.StatusBadRequest, message: "invalid page parameter"},
		{name: "InvalidLimitParam", failure: failure.InvalidLimitParam, code: http.StatusBadRequest, message: "invalid limit parameter"},
		{name: "ForbiddenError", failure: failure.ForbiddenError, code: http.StatusForbidden, message: "You don't have the required permissions"},
		{name: "ResourceRestrictedError", failure: failure.ResourceRestrictedError, code: http.StatusForbidden, message: "You don't have permission to access this resource"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.failure.Code)
			assert.Equal(t, tt.message, tt.failure.Message)
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: failure.NotFound("room not found"), code: http.StatusNotFound},
		{name: "bad request", err: failure.BadRequestFromString("invalid"), code: http.StatusBadRequest},
		{name: "wrapped", err: fmt.Errorf("service: %w", failure.NotFound("booking not found")), code: http.StatusNotFound},
		{name: "unauthorized", err: failure.Unauthorized("invalid token"), code: http.StatusUnauthorized},
		{name: "plain error", err: errors.New("boom"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, failure.GetCode(tt.err))
		})
	}
}

func TestFromPostgres(t *testing.T) {
	const overlap = "room is already booked for the selected dates"

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "exclusion violation",
			err:     &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"},
			code:    http.StatusBadRequest,
			message: overlap,
		},
		{
			name:    "unique violation",
			err:     fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "rooms_room_number_key"}),
			code:    http.StatusBadRequest,
			message: "resource already exists (rooms_room_number_key)",
		},
		{
			name:    "foreign key violation",
			err:     &pq.Error{Code: "23503"},
			code:    http.StatusBadRequest,
			message: "referenced resource does not exist",
		},
		{
			name:    "check violation",
			err:     &pq.Error{Code: "23514", Constraint: "bookings_dates_check"},
			code:    http.StatusBadRequest,
			message: "value violates constraint bookings_dates_check",
		},
		{
			name:    "other postgres error",
			err:     &pq.Error{Code: "40001"},
			code:    http.StatusInternalServerError,
			message: "pq: ",
		},
		{
			name:    "not a postgres error",
			err:     errors.New("connection reset"),
			code:    http.StatusInternalServerError,
			message: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := failure.FromPostgres(tt.err, overlap)

			assert.Equal(t, tt.code, failure.GetCode(got))
			assert.Equal(t, tt.message, got.Error())
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, failure.IsForeignKeyViolation(fmt.Errorf("delete: %w", &pq.Error{Code: "23503"})))
	assert.False(t, failure.IsForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, failure.IsForeignKeyViolation(errors.New("boom")))
}
