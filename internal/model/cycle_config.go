package model

import "time"

// CycleConfig is a singleton row (ID always 1) owned by the cycle state
// machine. Nothing else writes it.
type CycleConfig struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	CycleNumber     int       `gorm:"column:cycle_number;not null;default:1" json:"cycleNumber"`
	SeasonNumber    int       `gorm:"column:season_number;not null;default:1" json:"seasonNumber"`
	CycleStartedAt  time.Time `gorm:"column:cycle_started_at;not null" json:"cycleStartedAt"`
	SeasonStartedAt time.Time `gorm:"column:season_started_at;not null" json:"seasonStartedAt"`
	Paused          bool      `gorm:"not null;default:false" json:"paused"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (CycleConfig) TableName() string {
	return "cycle_configs"
}

const CycleConfigID = 1
