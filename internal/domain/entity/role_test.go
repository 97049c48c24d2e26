package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRoleName(t *testing.T) {
	tests := []struct {
		raw    string
		want   RoleName
		wantOK bool
	}{
		{raw: "user", want: RoleUser, wantOK: true},
		{raw: "USER", want: RoleUser, wantOK: true},
		{raw: "admin", want: RoleAdmin, wantOK: true},
		{raw: "Admin", want: RoleAdmin, wantOK: true},
		{raw: "superadmin", want: RoleSuperAdmin, wantOK: true},
		{raw: "SuperAdmin", want: RoleSuperAdmin, wantOK: true},
		{raw: "ROLE_ADMIN", want: RoleAdmin, wantOK: true},
		{raw: "role_super_admin", want: RoleSuperAdmin, wantOK: true},
		{raw: " admin ", want: RoleAdmin, wantOK: true},
		{raw: "super_admin", want: RoleSuperAdmin, wantOK: true},
		{raw: "ghost", wantOK: false},
		{raw: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ResolveRoleName(tt.raw)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRoleNames_EmptyDefaultsToUser(t *testing.T) {
	got, err := ResolveRoleNames(nil)

	require.NoError(t, err)
	assert.Equal(t, []RoleName{RoleUser}, got)
}

func TestResolveRoleNames_DuplicatesCollapse(t *testing.T) {
	got, err := ResolveRoleNames([]string{"admin", "ADMIN"})

	require.NoError(t, err)
	assert.Equal(t, []RoleName{RoleAdmin}, got)
}

func TestResolveRoleNames_PreservesFirstSeenOrder(t *testing.T) {
	got, err := ResolveRoleNames([]string{"superadmin", "user", "admin", "user"})

	require.NoError(t, err)
	assert.Equal(t, []RoleName{RoleSuperAdmin, RoleUser, RoleAdmin}, got)
}

func TestResolveRoleNames_UnknownFailsWholeRequest(t *testing.T) {
	got, err := ResolveRoleNames([]string{"admin", "ghost"})

	assert.ErrorIs(t, err, ErrUnknownRole)
	assert.Nil(t, got)
}

func TestRoles_Names(t *testing.T) {
	roles := Roles{{Name: RoleAdmin}, {Name: RoleUser}}

	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_USER"}, roles.Names())
}
