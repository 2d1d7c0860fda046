package model

import "time"

// Donation is immutable once written; rows are only removed in bulk by a
// cycle or season reset.
type Donation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DonorID   uint64    `gorm:"column:donor_id;index;not null" json:"donorId"`
	CreatorID uint64    `gorm:"column:creator_id;index;not null" json:"creatorId"`
	Seeds     int64     `gorm:"not null" json:"seeds"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Donation) TableName() string {
	return "donations"
}
