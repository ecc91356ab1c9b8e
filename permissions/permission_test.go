package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kingdom/permissions"
)

func TestGet_EmbeddedRules(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name       string
		path       string
		method     string
		wantSkip   bool
		wantAllows []string
		wantDenies []string
	}{
		{
			name:     "login is public",
			path:     "/api/auth/login",
			method:   "POST",
			wantSkip: true,
		},
		{
			name:       "change password needs any signed in role",
			path:       "/api/auth/change-password",
			method:     "POST",
			wantAllows: []string{"user", "admin", "superadmin"},
		},
		{
			name:       "reads fall back to any role",
			path:       "/api/rooms/{id}",
			method:     "GET",
			wantAllows: []string{"user", "admin", "superadmin"},
		},
		{
			name:       "writes fall back to staff roles",
			path:       "/api/bookings/",
			method:     "POST",
			wantAllows: []string{"admin", "superadmin"},
			wantDenies: []string{"user"},
		},
		{
			name:       "user admin is superadmin only",
			path:       "/api/users/{id}",
			method:     "DELETE",
			wantAllows: []string{"superadmin"},
			wantDenies: []string{"admin", "user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, got.Skip)

			for _, role := range tt.wantAllows {
				assert.Contains(t, got.Permissions, role)
			}

			for _, role := range tt.wantDenies {
				assert.NotContains(t, got.Permissions, role)
			}
		})
	}
}

func TestFindPermissions_UnknownMethod(t *testing.T) {
	data := permissions.PermissionData{}

	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/api/rooms/", "OPTIONS"))
}
