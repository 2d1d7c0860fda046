package model

import "time"

type RecipientType string

const (
	RecipientCreator RecipientType = "creator"
	RecipientUser    RecipientType = "user"
)

// Distribution is append-only. The unique index over (fund_id,
// recipient_type, recipient_id) is the idempotency key for settlement: a
// fund can pay a given recipient at most once.
type Distribution struct {
	ID            uint64        `gorm:"primaryKey;autoIncrement" json:"id"`
	FundID        uint64        `gorm:"column:fund_id;not null;uniqueIndex:uk_distributions_recipient" json:"fundId"`
	RecipientType RecipientType `gorm:"column:recipient_type;size:16;not null;uniqueIndex:uk_distributions_recipient" json:"recipientType"`
	RecipientID   uint64        `gorm:"column:recipient_id;not null;uniqueIndex:uk_distributions_recipient" json:"recipientId"`
	AmountCents   int64         `gorm:"column:amount_cents;not null" json:"amountCents"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"createdAt"`
}

func (Distribution) TableName() string {
	return "distributions"
}
