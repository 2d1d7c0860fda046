package model

import "time"

type Content struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatorID uint64    `gorm:"column:creator_id;index;not null" json:"creatorId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	ViewCount int64     `gorm:"column:view_count;not null;default:0" json:"viewCount"`
	Removed   bool      `gorm:"not null;default:false" json:"removed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Content) TableName() string {
	return "contents"
}
