package dto

import (
	"strings"
	"time"

	"kingdom/internal/domains/member/model"
	"kingdom/shared"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
)

type CreateMemberRequest struct {
	FirstName          string  `json:"first_name"           validate:"required,max=100"`
	LastName           string  `json:"last_name"            validate:"required,max=100"`
	Email              string  `json:"email"                validate:"required,email,max=100"`
	Nationality        *string `json:"nationality"          validate:"omitempty,max=100"`
	CountryOfResidence *string `json:"country_of_residence" validate:"omitempty,max=100"`
	Phone              *string `json:"phone"                validate:"omitempty,max=20"`
	PastorID           *string `json:"pastor_id"            validate:"omitempty,uuid"`
}

// ToModel builds a member awaiting vetting.
func (c *CreateMemberRequest) ToModel(user string, now time.Time) model.Member {
	return model.Member{
		ID:                 uuid.NewString(),
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		Email:              strings.ToLower(c.Email),
		Nationality:        c.Nationality,
		CountryOfResidence: c.CountryOfResidence,
		Phone:              c.Phone,
		VettingStatus:      model.VettingPending,
		PastorID:           c.PastorID,
		Metadata:           gModel.NewMetadata(user, now),
	}
}

// UpdateMemberRequest leaves vetting and pastor assignment to their own endpoints.
type UpdateMemberRequest struct {
	FirstName          string  `db:"first_name"           json:"first_name"           validate:"omitempty,max=100"`
	LastName           string  `db:"last_name"            json:"last_name"            validate:"omitempty,max=100"`
	Email              string  `db:"email"                json:"email"                validate:"omitempty,email,max=100"`
	Nationality        *string `db:"nationality"          json:"nationality"          validate:"omitempty,max=100"`
	CountryOfResidence *string `db:"country_of_residence" json:"country_of_residence" validate:"omitempty,max=100"`
	Phone              *string `db:"phone"                json:"phone"                validate:"omitempty,max=20"`
}

func (u UpdateMemberRequest) Normalize() UpdateMemberRequest {
	u.Email = strings.ToLower(u.Email)

	return u
}

type MemberResponse struct {
	ID                 string     `json:"id"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	Email              string     `json:"email"`
	Nationality        *string    `json:"nationality,omitempty"`
	CountryOfResidence *string    `json:"country_of_residence,omitempty"`
	Phone              *string    `json:"phone,omitempty"`
	VettingStatus      string     `json:"vetting_status"`
	PastorID           *string    `json:"pastor_id,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	gDto.Metadata
}

func (r *MemberResponse) FromModel(model model.Member) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.Nationality = model.Nationality
	r.CountryOfResidence = model.CountryOfResidence
	r.Phone = model.Phone
	r.VettingStatus = model.VettingStatus
	r.PastorID = model.PastorID
	r.ApprovedAt = model.ApprovedAt
	r.Metadata.FromModel(model.Metadata)
}

type GetMembersResponse struct {
	Members   []MemberResponse `json:"members"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetMembersResponse) FromModels(models []model.Member, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Members = make([]MemberResponse, len(models))
	for i, mod := range models {
		r.Members[i].FromModel(mod)
	}
}

type Filter struct {
	VettingStatus      string
	CountryOfResidence string
	PastorID           string
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	for _, item := range []struct{ field, value string }{
		{model.FieldVettingStatus, strings.ToUpper(f.VettingStatus)},
		{model.FieldCountryOfResidence, f.CountryOfResidence},
		{model.FieldPastorID, f.PastorID},
	} {
		if item.value == "" {
			continue
		}

		group = group.Add(gDto.Filter{
			Field:    item.field,
			Operator: gDto.FilterOperatorEq,
			Value:    item.value,
			Table:    model.TableName,
		})
	}

	return group
}
