package model

import "gorm.io/gorm"

// Migrate runs AutoMigrate over every model, including the unique index on
// distributions that backs settlement idempotency.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Creator{},
		&User{},
		&Donation{},
		&SeedEvent{},
		&Content{},
		&Poll{},
		&PublicMessage{},
		&Purchase{},
		&Partner{},
		&CashbackCode{},
		&Fund{},
		&Distribution{},
		&CycleConfig{},
	)
}
