package models

import "time"

// Member is a gym customer record. Dependent rows (phones, contacts,
// payments, exercises, check-ins, trainer assignments) are exclusively
// owned and removed by the member delete cascade.
type Member struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement"`
	FirstName           string     `gorm:"column:first_name;not null"`
	LastName            string     `gorm:"column:last_name;not null"`
	Email               string     `gorm:"type:text;not null"`
	BirthDate           *time.Time `gorm:"column:birth_date;type:date"`
	Sex                 *string    `gorm:"column:sex"`
	MembershipStartDate time.Time  `gorm:"column:membership_start_date;type:date;not null"`

	Phones            []PhoneNumber      `gorm:"foreignKey:MemberID"`
	EmergencyContacts []EmergencyContact `gorm:"foreignKey:MemberID"`
}

// PhoneNumber belongs to exactly one member.
type PhoneNumber struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	MemberID uint   `gorm:"column:member_id;not null;index"`
	Number   string `gorm:"not null"`
	Type     string `gorm:"not null"`
}

// EmergencyContact belongs to exactly one member.
type EmergencyContact struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	MemberID     uint   `gorm:"column:member_id;not null;index"`
	FirstName    string `gorm:"column:first_name;not null"`
	LastName     string `gorm:"column:last_name;not null"`
	Relationship string `gorm:"not null"`
	Phone        string `gorm:"not null"`
	Email        string `gorm:""`
}
