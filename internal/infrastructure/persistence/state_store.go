package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/workforce"
	"github.com/protrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// GormStateStore persists whole snapshots into relational tables.
// Every Save replaces the stored rows inside one transaction, so a reader
// of the database never observes a half-written snapshot.
type GormStateStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStateStore creates a store backed by db
func NewGormStateStore(db *Database) *GormStateStore {
	return &GormStateStore{db: db.DB, now: time.Now}
}

var _ state.Store = (*GormStateStore)(nil)

// Save replaces the stored snapshot with s
func (s *GormStateStore) Save(ctx context.Context, st state.State) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range models.SnapshotModels() {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}

		if err := insertAll(tx, toOrderModels(st.Orders)); err != nil {
			return err
		}
		if err := insertAll(tx, toProcessModels(st.Processes)); err != nil {
			return err
		}
		if err := insertAll(tx, toInventoryModels(st.Inventory)); err != nil {
			return err
		}
		if err := insertAll(tx, toResourceModels(st.Resources)); err != nil {
			return err
		}
		if err := insertAll(tx, toTransportModels(st.Transports)); err != nil {
			return err
		}
		if err := insertAll(tx, toRawSampleModels(st.RawSamples)); err != nil {
			return err
		}
		if err := insertAll(tx, toGovSampleModels(st.GovSamples)); err != nil {
			return err
		}
		if err := insertAll(tx, toWarehouseModels(st.Warehouses)); err != nil {
			return err
		}
		if err := insertAll(tx, toAttendanceModels(st.Attendance)); err != nil {
			return err
		}

		meta := models.StateMetaModel{ID: models.SnapshotMetaID, Version: st.Version, SavedAt: s.now().UTC()}
		if err := tx.Save(&meta).Error; err != nil {
			return fmt.Errorf("failed to save state meta: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. It returns (nil, nil) when nothing was saved.
func (s *GormStateStore) Load(ctx context.Context) (*state.State, error) {
	db := s.db.WithContext(ctx)

	var meta models.StateMetaModel
	if err := db.First(&meta, models.SnapshotMetaID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load state meta: %w", err)
	}

	var (
		orders     []models.ProductionOrderModel
		processes  []models.ProductionProcessModel
		items      []models.InventoryItemModel
		resources  []models.ResourceModel
		transports []models.TransportEntryModel
		rawSamples []models.RawMaterialSampleModel
		govSamples []models.GovProductSampleModel
		warehouses []models.WarehouseModel
		attendance []models.AttendanceRecordModel
	)

	queries := []struct {
		name string
		dest any
		db   *gorm.DB
	}{
		{"production orders", &orders, db},
		{"production processes", &processes, db.Preload("Materials", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("seq")
		})},
		{"inventory items", &items, db},
		{"resources", &resources, db},
		{"transport entries", &transports, db},
		{"raw material samples", &rawSamples, db},
		{"government samples", &govSamples, db},
		{"warehouses", &warehouses, db},
		{"attendance records", &attendance, db},
	}
	for _, q := range queries {
		if err := q.db.Order("position").Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", q.name, err)
		}
	}

	st := &state.State{
		Version:    meta.Version,
		Orders:     mapModels(orders, func(m *models.ProductionOrderModel) manufacturing.ProductionOrder { return m.ToDomain() }),
		Processes:  mapModels(processes, func(m *models.ProductionProcessModel) manufacturing.ProductionProcess { return m.ToDomain() }),
		Inventory:  mapModels(items, func(m *models.InventoryItemModel) inventory.InventoryItem { return m.ToDomain() }),
		Resources:  mapModels(resources, func(m *models.ResourceModel) resource.Resource { return m.ToDomain() }),
		Transports: mapModels(transports, func(m *models.TransportEntryModel) logistics.TransportEntry { return m.ToDomain() }),
		RawSamples: mapModels(rawSamples, func(m *models.RawMaterialSampleModel) quality.RawMaterialSample { return m.ToDomain() }),
		GovSamples: mapModels(govSamples, func(m *models.GovProductSampleModel) quality.GovProductSample { return m.ToDomain() }),
		Warehouses: mapModels(warehouses, func(m *models.WarehouseModel) workforce.Warehouse { return m.ToDomain() }),
		Attendance: mapModels(attendance, func(m *models.AttendanceRecordModel) workforce.AttendanceRecord { return m.ToDomain() }),
	}
	return st, nil
}

func insertAll[M any](tx *gorm.DB, rows []M) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("failed to insert %T: %w", rows[0], err)
	}
	return nil
}

func mapModels[M any, D any](rows []M, fn func(*M) D) []D {
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = fn(&rows[i])
	}
	return out
}

func toOrderModels(orders []manufacturing.ProductionOrder) []models.ProductionOrderModel {
	rows := make([]models.ProductionOrderModel, len(orders))
	for i, o := range orders {
		rows[i].FromDomain(o, i)
	}
	return rows
}

func toProcessModels(processes []manufacturing.ProductionProcess) []models.ProductionProcessModel {
	rows := make([]models.ProductionProcessModel, len(processes))
	for i, p := range processes {
		rows[i].FromDomain(p, i)
	}
	return rows
}

func toInventoryModels(items []inventory.InventoryItem) []models.InventoryItemModel {
	rows := make([]models.InventoryItemModel, len(items))
	for i, item := range items {
		rows[i].FromDomain(item, i)
	}
	return rows
}

func toResourceModels(resources []resource.Resource) []models.ResourceModel {
	rows := make([]models.ResourceModel, len(resources))
	for i, r := range resources {
		rows[i].FromDomain(r, i)
	}
	return rows
}

func toTransportModels(entries []logistics.TransportEntry) []models.TransportEntryModel {
	rows := make([]models.TransportEntryModel, len(entries))
	for i, e := range entries {
		rows[i].FromDomain(e, i)
	}
	return rows
}

func toRawSampleModels(samples []quality.RawMaterialSample) []models.RawMaterialSampleModel {
	rows := make([]models.RawMaterialSampleModel, len(samples))
	for i, s := range samples {
		rows[i].FromDomain(s, i)
	}
	return rows
}

func toGovSampleModels(samples []quality.GovProductSample) []models.GovProductSampleModel {
	rows := make([]models.GovProductSampleModel, len(samples))
	for i, s := range samples {
		rows[i].FromDomain(s, i)
	}
	return rows
}

func toWarehouseModels(warehouses []workforce.Warehouse) []models.WarehouseModel {
	rows := make([]models.WarehouseModel, len(warehouses))
	for i, w := range warehouses {
		rows[i].FromDomain(w, i)
	}
	return rows
}

func toAttendanceModels(records []workforce.AttendanceRecord) []models.AttendanceRecordModel {
	rows := make([]models.AttendanceRecordModel, len(records))
	for i, r := range records {
		rows[i].FromDomain(r, i)
	}
	return rows
}
