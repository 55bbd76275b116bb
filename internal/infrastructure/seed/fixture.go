package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/shared"
	"github.com/protrack/backend/internal/domain/workforce"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidFixture is wrapped by every fixture validation failure
var ErrInvalidFixture = errors.New("seed: invalid fixture")

// Number is a YAML scalar kept verbatim so quantities are parsed as exact decimals
type Number string

// UnmarshalYAML accepts integer, float and quoted scalars
func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", value.Line)
	}
	*n = Number(value.Value)
	return nil
}

func (n Number) decimal(field string) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(string(n))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalidFixture, field, n)
	}
	return d, nil
}

// Fixture is the YAML document shape of a seed file
type Fixture struct {
	Orders     []OrderFixture     `yaml:"orders"`
	Inventory  []ItemFixture      `yaml:"inventory"`
	Processes  []ProcessFixture   `yaml:"processes"`
	Resources  []ResourceFixture  `yaml:"resources"`
	Transports []TransportFixture `yaml:"transports"`
	RawSamples []RawSampleFixture `yaml:"rawSamples"`
	GovSamples []GovSampleFixture `yaml:"govSamples"`
	Warehouses []WarehouseFixture `yaml:"warehouses"`
}

type OrderFixture struct {
	ID          string `yaml:"id"`
	OrderNumber string `yaml:"orderNumber"`
	ProductName string `yaml:"productName"`
	Quantity    int64  `yaml:"quantity"`
	StartDate   string `yaml:"startDate"`
	EndDate     string `yaml:"endDate"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Progress    int    `yaml:"progress"`
}

type ItemFixture struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	SKU          string `yaml:"sku"`
	Group        string `yaml:"group"`
	Quantity     Number `yaml:"quantity"`
	Unit         string `yaml:"unit"`
	ReorderLevel Number `yaml:"reorderLevel"`
}

type RequirementFixture struct {
	InventoryItemID string `yaml:"inventoryItemId"`
	QuantityPerUnit Number `yaml:"quantityPerUnit"`
}

type ProcessFixture struct {
	ID               string               `yaml:"id"`
	ProductName      string               `yaml:"productName"`
	RawMaterials     []RequirementFixture `yaml:"rawMaterials"`
	PackingMaterials []RequirementFixture `yaml:"packingMaterials"`
}

type ResourceFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Utilization int    `yaml:"utilization"`
	Status      string `yaml:"status"`
}

type TransportFixture struct {
	ID              string `yaml:"id"`
	OrderID         string `yaml:"orderId"`
	TransporterName string `yaml:"transporterName"`
	TransportCost   Number `yaml:"transportCost"`
	LoadingCost     Number `yaml:"loadingCost"`
	UnloadingCost   Number `yaml:"unloadingCost"`
	LabourCharge    Number `yaml:"labourCharge"`
	Date            string `yaml:"date"`
}

type RawSampleFixture struct {
	ID            string `yaml:"id"`
	MaterialName  string `yaml:"materialName"`
	BatchNumber   string `yaml:"batchNumber"`
	Supplier      string `yaml:"supplier"`
	ReceivedDate  string `yaml:"receivedDate"`
	TestDate      string `yaml:"testDate"`
	Status        string `yaml:"status"`
	LabTechnician string `yaml:"labTechnician"`
	Remarks       string `yaml:"remarks"`
}

type GovSampleFixture struct {
	ID             string `yaml:"id"`
	ProductName    string `yaml:"productName"`
	OrderNumber    string `yaml:"orderNumber"`
	OfficialName   string `yaml:"officialName"`
	Department     string `yaml:"department"`
	CollectionDate string `yaml:"collectionDate"`
	ResultDate     string `yaml:"resultDate"`
	Status         string `yaml:"status"`
	Remarks        string `yaml:"remarks"`
}

type WarehouseFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Location    string `yaml:"location"`
	WorkerCount int    `yaml:"workerCount"`
}

// LoadFile reads and converts a YAML fixture
func LoadFile(path string) (state.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return state.State{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes a YAML fixture and validates every record
func Load(r io.Reader) (state.State, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fx Fixture
	if err := dec.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return state.State{}, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return fx.State()
}

func idOrNew(id string) string {
	if shared.IsBlank(id) {
		return shared.NewID()
	}
	return id
}

func parseDay(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(manufacturing.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a YYYY-MM-DD date", ErrInvalidFixture, field, s)
	}
	return t, nil
}

func parseOptionalDay(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDay(field, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func invalid(kind string, idx int, err error) error {
	if errors.Is(err, ErrInvalidFixture) {
		return fmt.Errorf("%s[%d]: %w", kind, idx, err)
	}
	return fmt.Errorf("%w: %s[%d]: %v", ErrInvalidFixture, kind, idx, err)
}

// State converts the fixture into a snapshot
func (fx Fixture) State() (state.State, error) {
	st := state.State{
		Orders:     make([]manufacturing.ProductionOrder, 0, len(fx.Orders)),
		Inventory:  make([]inventory.InventoryItem, 0, len(fx.Inventory)),
		Processes:  make([]manufacturing.ProductionProcess, 0, len(fx.Processes)),
		Resources:  make([]resource.Resource, 0, len(fx.Resources)),
		Transports: make([]logistics.TransportEntry, 0, len(fx.Transports)),
		RawSamples: make([]quality.RawMaterialSample, 0, len(fx.RawSamples)),
		GovSamples: make([]quality.GovProductSample, 0, len(fx.GovSamples)),
		Warehouses: make([]workforce.Warehouse, 0, len(fx.Warehouses)),
		Attendance: []workforce.AttendanceRecord{},
	}

	for i, f := range fx.Inventory {
		qty, err := f.Quantity.decimal("quantity")
		if err != nil {
			return state.State{}, invalid("inventory", i, err)
		}
		reorder, err := f.ReorderLevel.decimal("reorderLevel")
		if err != nil {
			return state.State{}, invalid("inventory", i, err)
		}
		it, err := inventory.NewInventoryItem(idOrNew(f.ID), f.Name, f.SKU, inventory.Group(f.Group), qty, f.Unit, reorder)
		if err != nil {
			return state.State{}, invalid("inventory", i, err)
		}
		st.Inventory = append(st.Inventory, it)
	}

	for i, f := range fx.Orders {
		o, err := f.order()
		if err != nil {
			return state.State{}, invalid("orders", i, err)
		}
		st.Orders = append(st.Orders, o)
	}

	for i, f := range fx.Processes {
		raw, err := requirements(f.RawMaterials)
		if err != nil {
			return state.State{}, invalid("processes", i, err)
		}
		packing, err := requirements(f.PackingMaterials)
		if err != nil {
			return state.State{}, invalid("processes", i, err)
		}
		p, err := manufacturing.NewProductionProcess(idOrNew(f.ID), f.ProductName, raw, packing)
		if err != nil {
			return state.State{}, invalid("processes", i, err)
		}
		st.Processes = append(st.Processes, p)
	}

	for i, f := range fx.Resources {
		status, err := resource.ParseStatus(f.Status)
		if err != nil {
			return state.State{}, invalid("resources", i, err)
		}
		if f.Utilization < 0 || f.Utilization > 100 {
			return state.State{}, invalid("resources", i, fmt.Errorf("utilization %d out of range", f.Utilization))
		}
		st.Resources = append(st.Resources, resource.Resource{
			ID: idOrNew(f.ID), Name: f.Name, Type: resource.Type(f.Type), Utilization: f.Utilization, Status: status,
		})
	}

	for i, f := range fx.Transports {
		e, err := f.entry()
		if err != nil {
			return state.State{}, invalid("transports", i, err)
		}
		st.Transports = append(st.Transports, e)
	}

	for i, f := range fx.RawSamples {
		s, err := f.sample()
		if err != nil {
			return state.State{}, invalid("rawSamples", i, err)
		}
		st.RawSamples = append(st.RawSamples, s)
	}

	for i, f := range fx.GovSamples {
		s, err := f.sample()
		if err != nil {
			return state.State{}, invalid("govSamples", i, err)
		}
		st.GovSamples = append(st.GovSamples, s)
	}

	for i, f := range fx.Warehouses {
		w, err := workforce.NewWarehouse(idOrNew(f.ID), f.Name, f.Location)
		if err != nil {
			return state.State{}, invalid("warehouses", i, err)
		}
		w.WorkerCount = f.WorkerCount
		st.Warehouses = append(st.Warehouses, w)
	}

	return st, nil
}

func (f OrderFixture) order() (manufacturing.ProductionOrder, error) {
	start, err := parseDay("startDate", f.StartDate)
	if err != nil {
		return manufacturing.ProductionOrder{}, err
	}
	end, err := parseDay("endDate", f.EndDate)
	if err != nil {
		return manufacturing.ProductionOrder{}, err
	}
	o, err := manufacturing.NewProductionOrder(manufacturing.NewOrderParams{
		ProductName: f.ProductName,
		Quantity:    f.Quantity,
		StartDate:   start,
		EndDate:     end,
		Priority:    manufacturing.Priority(f.Priority),
		Status:      manufacturing.OrderStatus(f.Status),
	}, time.Now())
	if err != nil {
		return manufacturing.ProductionOrder{}, err
	}
	if f.Progress < 0 || f.Progress > manufacturing.MaxProgress {
		return manufacturing.ProductionOrder{}, fmt.Errorf("progress %d out of range", f.Progress)
	}
	if o.Status != manufacturing.OrderStatusCompleted {
		o.Progress = f.Progress
	}
	o.ID = idOrNew(f.ID)
	if f.OrderNumber != "" {
		o.OrderNumber = f.OrderNumber
	}
	return o, nil
}

func requirements(fs []RequirementFixture) ([]manufacturing.MaterialRequirement, error) {
	out := make([]manufacturing.MaterialRequirement, 0, len(fs))
	for _, f := range fs {
		q, err := f.QuantityPerUnit.decimal("quantityPerUnit")
		if err != nil {
			return nil, err
		}
		out = append(out, manufacturing.MaterialRequirement{InventoryItemID: f.InventoryItemID, QuantityPerUnit: q})
	}
	return out, nil
}

func (f TransportFixture) entry() (logistics.TransportEntry, error) {
	costs := make([]decimal.Decimal, 4)
	for i, n := range []struct {
		field string
		value Number
	}{
		{"transportCost", f.TransportCost},
		{"loadingCost", f.LoadingCost},
		{"unloadingCost", f.UnloadingCost},
		{"labourCharge", f.LabourCharge},
	} {
		d, err := n.value.decimal(n.field)
		if err != nil {
			return logistics.TransportEntry{}, err
		}
		costs[i] = d
	}
	date, err := parseDay("date", f.Date)
	if err != nil {
		return logistics.TransportEntry{}, err
	}
	return logistics.NewTransportEntry(idOrNew(f.ID), f.OrderID, f.TransporterName, costs[0], costs[1], costs[2], costs[3], date)
}

func parseQualityStatus(s string) (quality.Status, error) {
	status := quality.Status(s)
	if s == "" {
		status = quality.StatusPending
	}
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown quality status %q", ErrInvalidFixture, s)
	}
	return status, nil
}

func (f RawSampleFixture) sample() (quality.RawMaterialSample, error) {
	received, err := parseDay("receivedDate", f.ReceivedDate)
	if err != nil {
		return quality.RawMaterialSample{}, err
	}
	tested, err := parseOptionalDay("testDate", f.TestDate)
	if err != nil {
		return quality.RawMaterialSample{}, err
	}
	status, err := parseQualityStatus(f.Status)
	if err != nil {
		return quality.RawMaterialSample{}, err
	}
	s, err := quality.NewRawMaterialSample(idOrNew(f.ID), f.MaterialName, f.BatchNumber, f.Supplier, f.LabTechnician, f.Remarks, received)
	if err != nil {
		return quality.RawMaterialSample{}, err
	}
	s.Status = status
	s.TestDate = tested
	return s, nil
}

func (f GovSampleFixture) sample() (quality.GovProductSample, error) {
	collected, err := parseDay("collectionDate", f.CollectionDate)
	if err != nil {
		return quality.GovProductSample{}, err
	}
	result, err := parseOptionalDay("resultDate", f.ResultDate)
	if err != nil {
		return quality.GovProductSample{}, err
	}
	status, err := parseQualityStatus(f.Status)
	if err != nil {
		return quality.GovProductSample{}, err
	}
	s, err := quality.NewGovProductSample(idOrNew(f.ID), f.ProductName, f.OrderNumber, f.OfficialName, f.Department, f.Remarks, collected)
	if err != nil {
		return quality.GovProductSample{}, err
	}
	s.Status = status
	s.ResultDate = result
	return s, nil
}
