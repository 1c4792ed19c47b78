package enums

// PhoneType labels a member phone number.
type PhoneType string

const (
	PhoneTypeMobile PhoneType = "mobile"
	PhoneTypeHome   PhoneType = "home"
	PhoneTypeWork   PhoneType = "work"
)

// String implements fmt.Stringer.
func (p PhoneType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PhoneType.
func (p PhoneType) IsValid() bool {
	switch p {
	case PhoneTypeMobile, PhoneTypeHome, PhoneTypeWork:
		return true
	}
	return false
}
