package model

import "time"

type User struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName  string    `gorm:"column:display_name;size:120;not null" json:"displayName"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`
	SeedBalance  int64     `gorm:"column:seed_balance;not null;default:0" json:"seedBalance"`
	Score        int64     `gorm:"column:score;not null;default:0" json:"score"`
	BalanceCents int64     `gorm:"column:balance_cents;not null;default:0" json:"balanceCents"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
