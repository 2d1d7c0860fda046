package model

import "time"

// Fund is a pooled amount collected over a window and distributed exactly
// once. Distributed flips true only inside a successful settlement
// transaction; the flag doubles as the claim for mutual exclusion.
type Fund struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CycleNumber int       `gorm:"column:cycle_number;not null" json:"cycleNumber"`
	TotalCents  int64     `gorm:"column:total_cents;not null" json:"totalCents"`
	WindowStart time.Time `gorm:"column:window_start;not null" json:"windowStart"`
	WindowEnd   time.Time `gorm:"column:window_end;not null;index" json:"windowEnd"`
	Distributed bool      `gorm:"not null;default:false;index" json:"distributed"`

	// CreatorShareBps overrides the configured split for this fund when set.
	CreatorShareBps *int `gorm:"column:creator_share_bps" json:"creatorShareBps,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Fund) TableName() string {
	return "funds"
}
