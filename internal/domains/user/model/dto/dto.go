package dto

import (
	"strings"
	"time"

	"kingdom/internal/domains/user/model"
	"kingdom/shared"
	"kingdom/shared/constant"
	gDto "kingdom/shared/dto"
	gModel "kingdom/shared/model"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"     validate:"required,email,max=100"`
	Password string  `json:"password"  validate:"required,min=8"`
	Level    string  `json:"level"     validate:"omitempty,oneof=superadmin admin user"`
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
}

func (r *CreateUserRequest) ToModel(user, hashedPassword string, now time.Time) model.User {
	level := r.Level
	if level == "" {
		level = constant.RoleUser
	}

	return model.User{
		ID:       uuid.NewString(),
		Email:    strings.ToLower(r.Email),
		Password: hashedPassword,
		Level:    level,
		FullName: r.FullName,
		Active:   true,
		Metadata: gModel.NewMetadata(user, now),
	}
}

type UpdateUserRequest struct {
	Level    string  `db:"level"     json:"level"     validate:"omitempty,oneof=superadmin admin user"`
	FullName *string `db:"full_name" json:"full_name" validate:"omitempty,min=2,max=100"`
	Active   *bool   `db:"active"    json:"active"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Level     string     `json:"level"`
	FullName  *string    `json:"full_name,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type Filter struct {
	Level  string
	Active *bool
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.And()

	if f.Level != "" {
		group = group.Add(gDto.Filter{
			Field:    model.FieldLevel,
			Operator: gDto.FilterOperatorEq,
			Value:    f.Level,
			Table:    model.TableName,
		})
	}

	if f.Active != nil {
		group = group.Add(gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *f.Active,
			Table:    model.TableName,
		})
	}

	return group
}
