package model

import "kingdom/shared/model"

const (
	TableName  = "pastors"
	EntityName = "pastor"

	FieldID           = "id"
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldEmail        = "email"
	FieldChurchBranch = "church_branch"
	FieldCountryCode  = "country_code"
)

type Pastor struct {
	ID           string  `db:"id"`
	FirstName    string  `db:"first_name"`
	LastName     string  `db:"last_name"`
	Email        string  `db:"email"`
	ChurchBranch *string `db:"church_branch"`
	CountryCode  *string `db:"country_code"`
	model.Metadata
}

func (p Pastor) FullName() string {
	return p.FirstName + " " + p.LastName
}
