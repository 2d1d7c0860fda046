package model

import "time"

const (
	SeedEventDonationIn    = "donation_in"
	SeedEventDonationOut   = "donation_out"
	SeedEventPurchaseGrant = "purchase_grant"
)

// SeedEvent is the append-only seed ledger. It exists for traceability only
// and is cleared together with donations on reset.
type SeedEvent struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	RecipientType string    `gorm:"column:recipient_type;size:16;not null;index:idx_seed_events_recipient"`
	RecipientID   uint64    `gorm:"column:recipient_id;not null;index:idx_seed_events_recipient"`
	Delta         int64     `gorm:"not null"`
	Reason        string    `gorm:"size:32;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (SeedEvent) TableName() string {
	return "seed_events"
}
