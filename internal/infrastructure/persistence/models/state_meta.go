package models

import "time"

// SnapshotMetaID is the primary key of the single meta row
const SnapshotMetaID = 1

// StateMetaModel records which snapshot version the tables hold.
// Its absence means nothing has been saved yet.
type StateMetaModel struct {
	ID      uint      `gorm:"primaryKey;autoIncrement:false"`
	Version uint64    `gorm:"not null"`
	SavedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StateMetaModel) TableName() string {
	return "state_meta"
}
