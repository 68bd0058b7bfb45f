package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"guest", "admin", "manager", "staff"} {
		r, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, Role(s), r)
	}

	_, err := ParseRole("Admin")
	require.Error(t, err)
	_, err = ParseRole("")
	require.Error(t, err)
}

func TestRole_IsStaff(t *testing.T) {
	assert.False(t, RoleGuest.IsStaff())
	for _, r := range StaffRoles {
		assert.True(t, r.IsStaff(), r)
	}
}

func TestSession_JSONLayout(t *testing.T) {
	s := Session{
		User:  Account{ID: "admin-1", Name: "Admin User", Email: "admin@luxestay.com", Role: RoleAdmin},
		Token: "tok",
	}
	b, err := json.Marshal(s)
	require.NoError(t, err)

	assert.JSONEq(t, `{"user":{"id":"admin-1","name":"Admin User","email":"admin@luxestay.com","role":"admin"},"token":"tok"}`, string(b))
}
