package dto_test

import (
	"testing"
	"time"

	"kingdom/internal/domains/member/model"
	"kingdom/internal/domains/member/model/dto"

	"github.com/stretchr/testify/assert"
)

func TestCreateMemberRequest_ToModel(t *testing.T) {
	now := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	pastorID := "7d1c43a0-5f1e-4a59-9d7a-5b8e1f0c2a11"

	req := dto.CreateMemberRequest{
		FirstName: "Samuel",
		LastName:  "Otieno",
		Email:     "Samuel@Example.com",
		PastorID:  &pastorID,
	}

	member := req.ToModel("admin-1", now)

	assert.NotEmpty(t, member.ID)
	assert.Equal(t, "samuel@example.com", member.Email)
	assert.Equal(t, model.VettingPending, member.VettingStatus)
	assert.Nil(t, member.ApprovedAt)
	assert.Equal(t, &pastorID, member.PastorID)
	assert.Equal(t, now, member.ModifiedAt)
}

func TestMemberResponse_FromModel(t *testing.T) {
	approved := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	res := dto.MemberResponse{}
	res.FromModel(model.Member{
		ID:            "member-1",
		FirstName:     "Samuel",
		VettingStatus: model.VettingApproved,
		ApprovedAt:    &approved,
	})

	assert.Equal(t, "member-1", res.ID)
	assert.Equal(t, model.VettingApproved, res.VettingStatus)
	assert.Equal(t, &approved, res.ApprovedAt)
}

func TestFilter_ToFilterGroup(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty",
			filter:    dto.Filter{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "vetting status is upper-cased",
			filter:    dto.Filter{VettingStatus: "approved"},
			wantWhere: "(members.vetting_status = :vetting_status)",
			wantArgs:  map[string]any{model.FieldVettingStatus: model.VettingApproved},
		},
		{
			name:      "country and pastor",
			filter:    dto.Filter{CountryOfResidence: "Kenya", PastorID: "pastor-1"},
			wantWhere: "(members.country_of_residence = :country_of_residence AND members.pastor_id = :pastor_id)",
			wantArgs:  map[string]any{model.FieldCountryOfResidence: "Kenya", model.FieldPastorID: "pastor-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.filter.ToFilterGroup()
			where, args := group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
