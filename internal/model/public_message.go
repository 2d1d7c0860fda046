package model

import "time"

// PublicMessage is a message posted on a creator's public wall. Only the
// per-creator count feeds the composite score; delivery and threading live
// elsewhere.
type PublicMessage struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID uint64    `gorm:"column:creator_id;index;not null" json:"creatorId"`
	SenderID  uint64    `gorm:"column:sender_id;index;not null" json:"senderId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (PublicMessage) TableName() string {
	return "public_messages"
}
