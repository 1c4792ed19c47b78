package members

import (
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/db/models"
)

// MemberDTO is the public member view, with dependents attached when
// the lookup path preloaded them.
type MemberDTO struct {
	ID                  uint                  `json:"id"`
	FirstName           string                `json:"first_name"`
	LastName            string                `json:"last_name"`
	Email               string                `json:"email"`
	BirthDate           *string               `json:"birth_date,omitempty"`
	Sex                 *string               `json:"sex,omitempty"`
	MembershipStartDate string                `json:"membership_start_date"`
	Phones              []PhoneDTO            `json:"phones,omitempty"`
	EmergencyContacts   []EmergencyContactDTO `json:"emergency_contacts,omitempty"`
}

// PhoneDTO is the public phone-number view.
type PhoneDTO struct {
	ID     uint   `json:"id"`
	Number string `json:"number"`
	Type   string `json:"type"`
}

// EmergencyContactDTO is the public emergency-contact view.
type EmergencyContactDTO struct {
	ID           uint   `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
}

const dateLayout = "2006-01-02"

// ToDTO converts the persistence model into its public view.
func ToDTO(member *models.Member) MemberDTO {
	if member == nil {
		return MemberDTO{}
	}

	dto := MemberDTO{
		ID:                  member.ID,
		FirstName:           member.FirstName,
		LastName:            member.LastName,
		Email:               member.Email,
		Sex:                 member.Sex,
		MembershipStartDate: member.MembershipStartDate.Format(dateLayout),
	}
	if member.BirthDate != nil {
		formatted := member.BirthDate.Format(dateLayout)
		dto.BirthDate = &formatted
	}
	for _, phone := range member.Phones {
		dto.Phones = append(dto.Phones, PhoneDTO{ID: phone.ID, Number: phone.Number, Type: phone.Type})
	}
	for _, contact := range member.EmergencyContacts {
		dto.EmergencyContacts = append(dto.EmergencyContacts, EmergencyContactDTO{
			ID:           contact.ID,
			FirstName:    contact.FirstName,
			LastName:     contact.LastName,
			Relationship: contact.Relationship,
			Phone:        contact.Phone,
			Email:        contact.Email,
		})
	}
	return dto
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
