package model

import "time"

// Partner sales counters are competitive-period state: a season reset zeroes
// them along with the ranking inputs.
type Partner struct {
	ID                  uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                string    `gorm:"size:120;not null;uniqueIndex:uk_partners_name" json:"name"`
	SalesCount          int64     `gorm:"column:sales_count;not null;default:0" json:"salesCount"`
	RemittedCents       int64     `gorm:"column:remitted_cents;not null;default:0" json:"remittedCents"`
	CashbackCodesIssued int64     `gorm:"column:cashback_codes_issued;not null;default:0" json:"cashbackCodesIssued"`
	CreatedAt           time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Partner) TableName() string {
	return "partners"
}

type CashbackCode struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PartnerID uint64     `gorm:"column:partner_id;index;not null" json:"partnerId"`
	Code      string     `gorm:"size:64;not null;uniqueIndex:uk_cashback_codes_code" json:"code"`
	UsedAt    *time.Time `gorm:"column:used_at" json:"usedAt,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (CashbackCode) TableName() string {
	return "cashback_codes"
}
