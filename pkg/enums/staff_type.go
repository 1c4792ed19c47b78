package enums

import (
	"fmt"
	"strings"
)

// StaffType discriminates the compensation/role specialization attached
// to a staff record. Exactly one specialization row exists per staff.
type StaffType string

const (
	StaffTypeHourly      StaffType = "hourly"
	StaffTypeSalary      StaffType = "salary"
	StaffTypeMaintenance StaffType = "maintenance"
	StaffTypeManager     StaffType = "manager"
	StaffTypeContractor  StaffType = "contractor"
)

var validStaffTypes = []StaffType{
	StaffTypeHourly,
	StaffTypeSalary,
	StaffTypeMaintenance,
	StaffTypeManager,
	StaffTypeContractor,
}

// String implements fmt.Stringer.
func (s StaffType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StaffType.
func (s StaffType) IsValid() bool {
	for _, candidate := range validStaffTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStaffType converts raw input into a StaffType.
func ParseStaffType(value string) (StaffType, error) {
	candidate := StaffType(strings.ToLower(strings.TrimSpace(value)))
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", fmt.Errorf("invalid staff type %q", value)
}
