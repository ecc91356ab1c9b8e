package validator_test

import (
	"kingdom/shared/failure"
	"kingdom/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stayRequest struct {
	RoomID   string           `json:"room_id"   validate:"required"`
	Email    string           `json:"email"     validate:"omitempty,email"`
	CheckIn  string           `json:"check_in"  validate:"required,date"`
	Guests   int              `json:"guests"    validate:"gte=1,lte=12"`
	Status   string           `json:"status"    validate:"omitempty,oneof=PENDING CONFIRMED"`
	Amount   *decimal.Decimal `json:"amount"    validate:"omitempty,gt=0"`
	Currency string           `json:"currency"  validate:"omitempty,len=3"`
}

func validStay() stayRequest {
	return stayRequest{
		RoomID:  "room-1",
		Email:   "guest@example.com",
		CheckIn: "2025-01-01",
		Guests:  2,
		Status:  "PENDING",
	}
}

func TestValidateStruct(t *testing.T) {
	negative := decimal.NewFromInt(-5)
	positive := decimal.RequireFromString("120.50")

	tests := []struct {
		name    string
		mutate  func(r *stayRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(_ *stayRequest) {},
		},
		{
			name:    "missing room",
			mutate:  func(r *stayRequest) { r.RoomID = "" },
			wantErr: "room_id is required",
		},
		{
			name:    "malformed date",
			mutate:  func(r *stayRequest) { r.CheckIn = "01/02/2025" },
			wantErr: "check_in must be a date in YYYY-MM-DD format",
		},
		{
			name:    "invalid email",
			mutate:  func(r *stayRequest) { r.Email = "not-an-email" },
			wantErr: "email must be a valid email address",
		},
		{
			name:    "guest count out of range",
			mutate:  func(r *stayRequest) { r.Guests = 40 },
			wantErr: "guests must be less than or equal to 12",
		},
		{
			name:    "unknown status",
			mutate:  func(r *stayRequest) { r.Status = "LOST" },
			wantErr: "status must be one of PENDING CONFIRMED",
		},
		{
			name:    "non positive amount",
			mutate:  func(r *stayRequest) { r.Amount = &negative },
			wantErr: "amount must be greater than 0",
		},
		{
			name:   "positive amount",
			mutate: func(r *stayRequest) { r.Amount = &positive },
		},
		{
			name:    "currency length",
			mutate:  func(r *stayRequest) { r.Currency = "KSHS" },
			wantErr: "currency must be 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStay()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("CONFIRMED", "oneof=PENDING CONFIRMED"))
	assert.Error(t, validator.ValidateVar("NO_SHOW", "oneof=PENDING CONFIRMED"))
	assert.NoError(t, validator.ValidateVar("2025-03-01", "date"))
	assert.Error(t, validator.ValidateVar("2025-13-01", "date"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid body",
			body: `{"room_id":"room-1","check_in":"2025-01-01","guests":1,"amount":"99.90"}`,
		},
		{
			name:    "malformed json",
			body:    `{"room_id":`,
			wantErr: true,
		},
		{
			name:    "empty object",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req stayRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
