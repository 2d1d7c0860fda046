package model

import "time"

type Tier string

const (
	TierNovice  Tier = "novice"
	TierCommon  Tier = "common"
	TierPartner Tier = "partner"
	TierSupreme Tier = "supreme"
)

type Creator struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName   string    `gorm:"column:display_name;size:120;not null" json:"displayName"`
	Email         string    `gorm:"size:255;not null;uniqueIndex:uk_creators_email" json:"email"`
	Tier          Tier      `gorm:"size:16;not null;default:novice" json:"tier"`
	SeedsReceived int64     `gorm:"column:seeds_received;not null;default:0" json:"seedsReceived"`
	ManualPoints  int64     `gorm:"column:manual_points;not null;default:0" json:"manualPoints"`
	BalanceCents  int64     `gorm:"column:balance_cents;not null;default:0" json:"balanceCents"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Creator) TableName() string {
	return "creators"
}
