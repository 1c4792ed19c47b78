package models

import (
	"time"

	"github.com/isaacstephens/gymman-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Payment is one ledger row for a member. Status is a plain field with no
// transition table; revenue queries count complete and paid rows.
type Payment struct {
	ID       uint                `gorm:"primaryKey;autoIncrement"`
	MemberID uint                `gorm:"column:member_id;not null;index"`
	Amount   decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	Date     time.Time           `gorm:"type:date;not null"`
	Status   enums.PaymentStatus `gorm:"type:text;not null;default:pending"`
	Type     enums.PaymentType   `gorm:"type:text;not null;default:membership"`
}
