package model

import "time"

type PurchaseStatus string

const (
	PurchaseStatusAwaitingSettlement PurchaseStatus = "awaiting_settlement"
	PurchaseStatusSettlementPending  PurchaseStatus = "settlement_pending"
	PurchaseStatusCashbackReleased   PurchaseStatus = "cashback_released"
)

type Purchase struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint64         `gorm:"column:user_id;index;not null" json:"userId"`
	PartnerID   uint64         `gorm:"column:partner_id;index;not null" json:"partnerId"`
	AmountCents int64          `gorm:"column:amount_cents;not null" json:"amountCents"`
	Status      PurchaseStatus `gorm:"size:32;not null;index" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Purchase) TableName() string {
	return "purchases"
}
