package entities

import (
	"time"

	"gorm.io/datatypes"
)

// KV is one JSON document in the key-value store.
type KV struct {
	Key       string         `gorm:"primaryKey;size:191" json:"key"`
	Value     datatypes.JSON `json:"value"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (KV) TableName() string { return "kv_store" }
