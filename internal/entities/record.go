package entities

import (
	"time"
)

// Record is one row of the durable key-value store. Values are opaque to the
// storage layer; the stores above it keep JSON payloads in them.
type Record struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Value     []byte    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Record) TableName() string {
	return "records"
}

// Keys of the persisted collections.
const (
	RecordKeyUsers       = "users"
	RecordKeyCurrentUser = "currentUser"
	RecordKeyBooks       = "books"
)
