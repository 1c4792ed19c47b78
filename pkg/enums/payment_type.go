package enums

// PaymentType categorizes what a payment was for.
type PaymentType string

const (
	PaymentTypeMembership PaymentType = "membership"
	PaymentTypeTraining   PaymentType = "training"
	PaymentTypeMerch      PaymentType = "merch"
	PaymentTypeOther      PaymentType = "other"
)

// String implements fmt.Stringer.
func (p PaymentType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentType.
func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeMembership, PaymentTypeTraining, PaymentTypeMerch, PaymentTypeOther:
		return true
	}
	return false
}
