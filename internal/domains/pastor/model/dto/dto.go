package dto

import (
	"strings"
	"time"

	"kingdom/internal/domains/pastor/model"
	"kingdom/shared"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
)

type CreatePastorRequest struct {
	FirstName    string  `json:"first_name"    validate:"required,max=100"`
	LastName     string  `json:"last_name"     validate:"required,max=100"`
	Email        string  `json:"email"         validate:"required,email,max=100"`
	ChurchBranch *string `json:"church_branch" validate:"omitempty,max=100"`
	CountryCode  *string `json:"country_code"  validate:"omitempty,alpha,min=2,max=3"`
}

func (c *CreatePastorRequest) ToModel(user string, now time.Time) model.Pastor {
	return model.Pastor{
		ID:           uuid.NewString(),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Email:        strings.ToLower(c.Email),
		ChurchBranch: c.ChurchBranch,
		CountryCode:  upper(c.CountryCode),
		Metadata:     gModel.NewMetadata(user, now),
	}
}

type UpdatePastorRequest struct {
	FirstName    string  `db:"first_name"    json:"first_name"    validate:"omitempty,max=100"`
	LastName     string  `db:"last_name"     json:"last_name"     validate:"omitempty,max=100"`
	Email        string  `db:"email"         json:"email"         validate:"omitempty,email,max=100"`
	ChurchBranch *string `db:"church_branch" json:"church_branch" validate:"omitempty,max=100"`
	CountryCode  *string `db:"country_code"  json:"country_code"  validate:"omitempty,alpha,min=2,max=3"`
}

// Normalize lower-cases the email and upper-cases the country code.
func (u UpdatePastorRequest) Normalize() UpdatePastorRequest {
	u.Email = strings.ToLower(u.Email)
	u.CountryCode = upper(u.CountryCode)

	return u
}

type PastorResponse struct {
	ID           string  `json:"id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	ChurchBranch *string `json:"church_branch,omitempty"`
	CountryCode  *string `json:"country_code,omitempty"`
	gDto.Metadata
}

func (r *PastorResponse) FromModel(model model.Pastor) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.Email = model.Email
	r.ChurchBranch = model.ChurchBranch
	r.CountryCode = model.CountryCode
	r.Metadata.FromModel(model.Metadata)
}

type GetPastorsResponse struct {
	Pastors   []PastorResponse `json:"pastors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetPastorsResponse) FromModels(models []model.Pastor, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Pastors = make([]PastorResponse, len(models))
	for i, mod := range models {
		r.Pastors[i].FromModel(mod)
	}
}

type Filter struct {
	ChurchBranch string
	CountryCode  string
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.ChurchBranch != "" {
		group = group.Add(gDto.Filter{
			Field:    model.FieldChurchBranch,
			Operator: gDto.FilterOperatorEq,
			Value:    f.ChurchBranch,
			Table:    model.TableName,
		})
	}

	if f.CountryCode != "" {
		group = group.Add(gDto.Filter{
			Field:    model.FieldCountryCode,
			Operator: gDto.FilterOperatorEq,
			Value:    strings.ToUpper(f.CountryCode),
			Table:    model.TableName,
		})
	}

	return group
}

func upper(value *string) *string {
	if value == nil {
		return nil
	}

	v := strings.ToUpper(*value)

	return &v
}
