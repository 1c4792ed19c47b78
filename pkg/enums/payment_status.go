package enums

import "strings"

// PaymentStatus tracks the lifecycle state of a payment row. The legacy
// data carried inconsistent casings ("Complete", "Paid", "completed");
// parsing normalizes to this set and everything else is rejected.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusPaid     PaymentStatus = "paid"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusComplete,
	PaymentStatusFailed,
	PaymentStatusPaid,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// Settled reports whether the status counts toward revenue.
func (p PaymentStatus) Settled() bool {
	return p == PaymentStatusComplete || p == PaymentStatusPaid
}

// ParsePaymentStatus normalizes raw input; ok is false for unknown
// values so callers can ignore them rather than fail.
func ParsePaymentStatus(value string) (PaymentStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	// legacy spelling
	if normalized == "completed" {
		normalized = string(PaymentStatusComplete)
	}
	candidate := PaymentStatus(normalized)
	if candidate.IsValid() {
		return candidate, true
	}
	return "", false
}

// SettledPaymentStatuses lists the statuses summed by revenue queries.
func SettledPaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusComplete, PaymentStatusPaid}
}
