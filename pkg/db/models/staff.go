package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Staff is the base employee record. Exactly one specialization row
// (hourly/salary/maintenance/manager/contractor) accompanies it; the
// registration transaction enforces that, not the schema.
type Staff struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	SSN            string    `gorm:"column:ssn;not null"`
	FirstName      string    `gorm:"column:first_name;not null"`
	LastName       string    `gorm:"column:last_name;not null"`
	EmploymentDate time.Time `gorm:"column:employment_date;type:date;not null"`
	BirthDate      time.Time `gorm:"column:birth_date;type:date;not null"`
	Address        string    `gorm:"not null"`
}

func (Staff) TableName() string { return "staff" }

// HourlyEmployee is the hourly-pay specialization.
type HourlyEmployee struct {
	StaffID uint            `gorm:"column:staff_id;primaryKey"`
	Rate    decimal.Decimal `gorm:"type:numeric(8,2);not null"`
}

// SalaryEmployee is the salaried specialization.
type SalaryEmployee struct {
	StaffID      uint            `gorm:"column:staff_id;primaryKey"`
	AnnualSalary decimal.Decimal `gorm:"column:annual_salary;type:numeric(12,2);not null"`
}

// MaintenanceEmployee carries no extra fields beyond membership in the set.
type MaintenanceEmployee struct {
	StaffID uint `gorm:"column:staff_id;primaryKey"`
}

// Manager records the managed shift.
type Manager struct {
	StaffID uint   `gorm:"column:staff_id;primaryKey"`
	Shift   string `gorm:"not null"`
}

// Contractor records the contracting arrangement.
type Contractor struct {
	StaffID uint   `gorm:"column:staff_id;primaryKey"`
	Type    string `gorm:"not null"`
	Details string `gorm:""`
}
