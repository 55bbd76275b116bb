package models

import (
	"time"
)

// BaseModel provides the common columns of every snapshot table
type BaseModel struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Position  int       `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// nullableTime maps a zero time to NULL
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// timeOrZero maps NULL back to the zero time
func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// copyTime returns an independent copy of an optional timestamp
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// AllModels returns every model in creation order, used by AutoMigrate
func AllModels() []any {
	return []any{
		&StateMetaModel{},
		&ProductionOrderModel{},
		&ProductionProcessModel{},
		&ProcessMaterialModel{},
		&InventoryItemModel{},
		&ResourceModel{},
		&TransportEntryModel{},
		&RawMaterialSampleModel{},
		&GovProductSampleModel{},
		&WarehouseModel{},
		&AttendanceRecordModel{},
	}
}

// SnapshotModels returns the collection models in deletion order, children first
func SnapshotModels() []any {
	return []any{
		&ProcessMaterialModel{},
		&ProductionProcessModel{},
		&ProductionOrderModel{},
		&InventoryItemModel{},
		&ResourceModel{},
		&TransportEntryModel{},
		&RawMaterialSampleModel{},
		&GovProductSampleModel{},
		&AttendanceRecordModel{},
		&WarehouseModel{},
	}
}
