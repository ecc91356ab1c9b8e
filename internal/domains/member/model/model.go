package model

import (
	"time"

	"kingdom/shared/model"
)

const (
	TableName  = "members"
	EntityName = "member"

	FieldID                 = "id"
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldEmail              = "email"
	FieldNationality        = "nationality"
	FieldCountryOfResidence = "country_of_residence"
	FieldPhone              = "phone"
	FieldVettingStatus      = "vetting_status"
	FieldPastorID           = "pastor_id"
	FieldApprovedAt         = "approved_at"
)

const (
	VettingPending  = "PENDING"
	VettingApproved = "APPROVED"
	VettingRejected = "REJECTED"

	TagVettingStatus = "oneof=PENDING APPROVED REJECTED"
)

type Member struct {
	ID                 string     `db:"id"`
	FirstName          string     `db:"first_name"`
	LastName           string     `db:"last_name"`
	Email              string     `db:"email"`
	Nationality        *string    `db:"nationality"`
	CountryOfResidence *string    `db:"country_of_residence"`
	Phone              *string    `db:"phone"`
	VettingStatus      string     `db:"vetting_status"`
	PastorID           *string    `db:"pastor_id"`
	ApprovedAt         *time.Time `db:"approved_at"`
	model.Metadata
}
