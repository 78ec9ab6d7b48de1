package domain_test

import (
	"testing"

	"go-workforce/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Role
		ok   bool
	}{
		{"employee", domain.RoleEmployee, true},
		{" HR ", domain.RoleHR, true},
		{"Employer", domain.RoleEmployer, true},
		{"admin", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRole_HasProfile(t *testing.T) {
	assert.True(t, domain.RoleEmployee.HasProfile())
	assert.True(t, domain.RoleHR.HasProfile())
	assert.False(t, domain.RoleEmployer.HasProfile())
	assert.False(t, domain.Role("EMPLOYEE").Valid())
}
