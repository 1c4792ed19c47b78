package trainers

// TrainerDTO is the public trainer view.
type TrainerDTO struct {
	StaffID    uint   `json:"staff_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Speciality string `json:"speciality"`
	Active     bool   `json:"active"`
}

// RelationshipDTO is one trainer-client pairing with both names joined in.
type RelationshipDTO struct {
	TrainerID   uint    `json:"trainer_id"`
	TrainerName string  `json:"trainer_name"`
	MemberID    uint    `json:"member_id"`
	MemberName  string  `json:"member_name"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

// ClientDTO is the trainer-scoped view of an assigned member.
type ClientDTO struct {
	MemberID   uint   `json:"member_id"`
	MemberName string `json:"member_name"`
	StartDate  string `json:"start_date"`
	Notes      string `json:"notes,omitempty"`
}
