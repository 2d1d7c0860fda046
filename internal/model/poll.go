package model

import "time"

type Poll struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID uint64    `gorm:"column:creator_id;index;not null" json:"creatorId"`
	Question  string    `gorm:"size:255;not null" json:"question"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Poll) TableName() string {
	return "polls"
}
