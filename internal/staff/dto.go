package staff

import (
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

// RegisterInput carries the base staff fields plus the specialization
// discriminator. Pay figures arrive as strings and are parsed during
// validation so a bad number never reaches the database.
type RegisterInput struct {
	SSN            string
	FirstName      string
	LastName       string
	EmploymentDate string
	BirthDate      string
	Address        string

	StaffType enums.StaffType

	HourlyRate     string
	AnnualSalary   string
	ManagerShift   string
	ContractorType string
	ContractorInfo string
}

// StaffDTO is the public staff view with the specialization flattened in.
type StaffDTO struct {
	ID             uint            `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	EmploymentDate string          `json:"employment_date"`
	StaffType      enums.StaffType `json:"staff_type"`

	HourlyRate     string `json:"hourly_rate,omitempty"`
	AnnualSalary   string `json:"annual_salary,omitempty"`
	ManagerShift   string `json:"manager_shift,omitempty"`
	ContractorType string `json:"contractor_type,omitempty"`
	ContractorInfo string `json:"contractor_info,omitempty"`
}

const dateLayout = "2006-01-02"

func toDTO(record *models.Staff, staffType enums.StaffType) StaffDTO {
	return StaffDTO{
		ID:             record.ID,
		FirstName:      record.FirstName,
		LastName:       record.LastName,
		EmploymentDate: record.EmploymentDate.Format(dateLayout),
		StaffType:      staffType,
	}
}
