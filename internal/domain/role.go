package domain

import "strings"

type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleEmployer Role = "employer"
)

var allRoles = []Role{RoleEmployee, RoleHR, RoleEmployer}

// ParseRole normalizes v and reports whether it names one of the fixed roles.
func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range allRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok && string(r) == strings.ToLower(string(r))
}

// HasProfile reports whether accounts of this role own a role-profile record.
func (r Role) HasProfile() bool {
	return r == RoleEmployee || r == RoleHR
}
