// Package seed provides the initial plant dataset: the built-in demo data,
// a YAML fixture loader and a generator for extra demo records.
package seed

import (
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/workforce"
	"github.com/protrack/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse(manufacturing.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func item(id, name, sku string, group inventory.Group, qty int64, unit string, reorder int64) inventory.InventoryItem {
	return inventory.InventoryItem{
		ID:           id,
		Name:         name,
		SKU:          sku,
		Group:        group,
		Unit:         unit,
		ReorderLevel: decimal.NewFromInt(reorder),
	}.WithQuantity(decimal.NewFromInt(qty))
}

func req(itemID string, perUnit int64) manufacturing.MaterialRequirement {
	return manufacturing.MaterialRequirement{InventoryItemID: itemID, QuantityPerUnit: decimal.NewFromInt(perUnit)}
}

// Default returns the built-in demo dataset
func Default() state.State {
	return state.State{
		Orders: []manufacturing.ProductionOrder{
			{ID: "1", OrderNumber: "ORD-2023-001", ProductName: "Circuit Board A1", Quantity: 500, StartDate: day("2023-10-24"), EndDate: day("2023-10-25"), Status: manufacturing.OrderStatusInProgress, Priority: manufacturing.PriorityHigh, Progress: 65},
			{ID: "2", OrderNumber: "ORD-2023-002", ProductName: "Power Module T-5", Quantity: 200, StartDate: day("2023-10-24"), EndDate: day("2023-10-26"), Status: manufacturing.OrderStatusDelayed, Priority: manufacturing.PriorityMedium, Progress: 12},
			{ID: "3", OrderNumber: "ORD-2023-003", ProductName: `Display Panel 14"`, Quantity: 150, StartDate: day("2023-10-25"), EndDate: day("2023-10-25"), Status: manufacturing.OrderStatusPlanning, Priority: manufacturing.PriorityHigh, Progress: 0},
			{ID: "4", OrderNumber: "ORD-2023-004", ProductName: "Casing Unit SL", Quantity: 1000, StartDate: day("2023-10-24"), EndDate: day("2023-10-24"), Status: manufacturing.OrderStatusCompleted, Priority: manufacturing.PriorityLow, Progress: 100},
		},
		Resources: []resource.Resource{
			{ID: "r1", Name: "Assembly Line A", Type: resource.TypeStation, Utilization: 85, Status: resource.StatusOnline},
			{ID: "r2", Name: "SMT Machine 01", Type: resource.TypeMachine, Utilization: 92, Status: resource.StatusOnline},
			{ID: "r3", Name: "Quality Lab", Type: resource.TypeStation, Utilization: 45, Status: resource.StatusMaintenance},
		},
		Inventory: []inventory.InventoryItem{
			item("i1", "Resistor 10k", "E-001", inventory.GroupRawMaterial, 15000, "pcs", 5000),
			item("i2", "Alu Chassis", "M-552", inventory.GroupRawMaterial, 45, "units", 100),
			item("i3", "Packing Box Small", "P-101", inventory.GroupPackingMaterial, 2000, "pcs", 500),
			item("i4", "Capacitor 47uF", "E-002", inventory.GroupRawMaterial, 12000, "pcs", 3000),
		},
		Processes: []manufacturing.ProductionProcess{{
			ID:               "p1",
			ProductName:      "Circuit Board A1",
			RawMaterials:     []manufacturing.MaterialRequirement{req("i1", 10), req("i4", 5)},
			PackingMaterials: []manufacturing.MaterialRequirement{req("i3", 1)},
		}},
		Transports: []logistics.TransportEntry{{
			ID:              "t1",
			OrderID:         "4",
			TransporterName: "FastTrack Freight",
			TransportCost:   decimal.NewFromInt(450),
			LoadingCost:     decimal.NewFromInt(50),
			UnloadingCost:   decimal.NewFromInt(50),
			LabourCharge:    decimal.NewFromInt(30),
			Date:            day("2023-10-24"),
		}},
		RawSamples: []quality.RawMaterialSample{
			{ID: "rs1", MaterialName: "Liquid Resin B", BatchNumber: "BAT-992-X", Supplier: "ChemicalSolutions Ltd", ReceivedDate: day("2023-10-20"), Status: quality.StatusPass, LabTechnician: "Sarah Miller"},
			{ID: "rs2", MaterialName: "Copper Foil 0.2mm", BatchNumber: "CF-5582", Supplier: "Global Metal Co", ReceivedDate: day("2023-10-23"), Status: quality.StatusPending, LabTechnician: "Sarah Miller"},
		},
		GovSamples: []quality.GovProductSample{
			{ID: "gs1", ProductName: "Power Module T-5", OrderNumber: "ORD-2023-002", OfficialName: "Inspecter Thompson", Department: "Bureau of Electronics Standard", CollectionDate: day("2023-10-22"), Status: quality.StatusPending},
		},
		Warehouses: []workforce.Warehouse{
			{ID: "wh1", Name: "Main Central Hub", Location: "Section A, Industrial District", WorkerCount: 24},
			{ID: "wh2", Name: "West Dock Storage", Location: "Section F, Harbor View", WorkerCount: 12},
		},
		Attendance: []workforce.AttendanceRecord{},
	}
}

// Initial builds the dataset used to seed an empty store: the fixture file
// when configured, otherwise the built-in data, plus any generated orders.
func Initial(cfg config.SeedConfig, now time.Time) (state.State, error) {
	st := Default()
	if cfg.File != "" {
		loaded, err := LoadFile(cfg.File)
		if err != nil {
			return state.State{}, err
		}
		st = loaded
	}
	if cfg.FakeOrders > 0 {
		st = Fake(st, cfg.FakeOrders, cfg.FakeSeed, now)
	}
	return st, nil
}
