package payments

import (
	"github.com/isaacstephens/gymman-backend/pkg/db/models"
	"github.com/isaacstephens/gymman-backend/pkg/enums"
)

// PaymentDTO is the public ledger row view.
type PaymentDTO struct {
	ID       uint                `json:"id"`
	MemberID uint                `json:"member_id"`
	Amount   string              `json:"amount"`
	Date     string              `json:"date"`
	Status   enums.PaymentStatus `json:"status"`
	Type     enums.PaymentType   `json:"type"`
}

// PendingPaymentDTO joins the owing member's name onto the row.
type PendingPaymentDTO struct {
	PaymentDTO
	MemberName string `json:"member_name"`
}

// AddPaymentInput carries a new ledger entry. Amount arrives as a string
// and is parsed during validation.
type AddPaymentInput struct {
	MemberID uint
	Amount   string
	Date     string
	Status   string
	Type     string
}

// SearchInput carries the optional, conjunctive ledger filters.
type SearchInput struct {
	MemberQuery string
	From        string
	To          string
	Status      string
}

const dateLayout = "2006-01-02"

func toDTO(payment *models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:       payment.ID,
		MemberID: payment.MemberID,
		Amount:   payment.Amount.StringFixed(2),
		Date:     payment.Date.Format(dateLayout),
		Status:   payment.Status,
		Type:     payment.Type,
	}
}
