package models

import "time"

// CartSnapshot stores the serialized cart for one session key.
type CartSnapshot struct {
	Key       string     `gorm:"column:snapshot_key;primaryKey"`
	Payload   string     `gorm:"column:payload;not null"`
	ExpiresAt *time.Time `gorm:"column:expires_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table created by the goose migration.
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
