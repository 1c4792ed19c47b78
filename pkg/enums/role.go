package enums

import (
	"fmt"
	"strings"
)

// Role represents a gym account role.
type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleStaff   Role = "staff"
	RoleOwner   Role = "owner"
)

// roleRank orders roles from least to most privileged.
var roleRank = map[Role]int{
	RoleMember:  1,
	RoleTrainer: 2,
	RoleStaff:   3,
	RoleOwner:   4,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role meets the given minimum role.
func (r Role) AtLeast(min Role) bool {
	return r.IsValid() && roleRank[r] >= roleRank[min]
}

// ParseRole converts raw input into a Role. Matching is case-insensitive
// because the legacy data stored roles with mixed casing.
func ParseRole(value string) (Role, error) {
	candidate := Role(strings.ToLower(strings.TrimSpace(value)))
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid role %q", value)
}
