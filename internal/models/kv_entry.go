package models

import "time"

// KVEntry is one key of the durable namespace. Revision grows on every write
// so other processes sharing the database file can detect changes.
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey"`
	Value     string    `gorm:"column:entry_value;not null"`
	Revision  int64     `gorm:"column:revision;not null;default:1"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
