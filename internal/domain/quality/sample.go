package quality

import (
	"strings"
	"time"

	"github.com/protrack/backend/internal/domain/shared"
)

// Status is a laboratory verdict
type Status string

const (
	StatusPending Status = "Pending"
	StatusPass    Status = "Pass"
	StatusFail    Status = "Fail"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusPass || s == StatusFail
}

// RawMaterialSample is an incoming material lot held for lab testing
type RawMaterialSample struct {
	ID            string
	MaterialName  string
	BatchNumber   string
	Supplier      string
	ReceivedDate  time.Time
	TestDate      *time.Time
	Status        Status
	LabTechnician string
	Remarks       string
}

// NewRawMaterialSample creates a pending sample
func NewRawMaterialSample(id, material, batch, supplier, technician, remarks string, received time.Time) (RawMaterialSample, error) {
	if shared.IsBlank(material) || shared.IsBlank(batch) {
		return RawMaterialSample{}, shared.NewInvalidInputError("material name and batch number are required")
	}
	return RawMaterialSample{
		ID:            id,
		MaterialName:  strings.TrimSpace(material),
		BatchNumber:   strings.TrimSpace(batch),
		Supplier:      strings.TrimSpace(supplier),
		ReceivedDate:  received,
		Status:        StatusPending,
		LabTechnician: strings.TrimSpace(technician),
		Remarks:       remarks,
	}, nil
}

// WithStatus returns a copy carrying the verdict; a Pass or Fail stamps the test date
func (s RawMaterialSample) WithStatus(status Status, at time.Time) RawMaterialSample {
	s.Status = status
	if status == StatusPending {
		s.TestDate = nil
	} else {
		s.TestDate = &at
	}
	return s
}

// GovProductSample is a finished-product sample collected by a regulator
type GovProductSample struct {
	ID             string
	ProductName    string
	OrderNumber    string
	OfficialName   string
	Department     string
	CollectionDate time.Time
	ResultDate     *time.Time
	Status         Status
	Remarks        string
}

// NewGovProductSample creates a pending regulator sample
func NewGovProductSample(id, product, orderNumber, official, department, remarks string, collected time.Time) (GovProductSample, error) {
	if shared.IsBlank(product) || shared.IsBlank(orderNumber) {
		return GovProductSample{}, shared.NewInvalidInputError("product name and order number are required")
	}
	return GovProductSample{
		ID:             id,
		ProductName:    strings.TrimSpace(product),
		OrderNumber:    strings.TrimSpace(orderNumber),
		OfficialName:   strings.TrimSpace(official),
		Department:     strings.TrimSpace(department),
		CollectionDate: collected,
		Status:         StatusPending,
		Remarks:        remarks,
	}, nil
}

// WithStatus returns a copy carrying the verdict; a Pass or Fail stamps the result date
func (s GovProductSample) WithStatus(status Status, at time.Time) GovProductSample {
	s.Status = status
	if status == StatusPending {
		s.ResultDate = nil
	} else {
		s.ResultDate = &at
	}
	return s
}

// Summary counts samples across both registers
type Summary struct {
	Total   int
	Pending int
}

// Summarize counts all samples and the pending ones
func Summarize(raw []RawMaterialSample, gov []GovProductSample) Summary {
	summary := Summary{Total: len(raw) + len(gov)}
	for _, s := range raw {
		if s.Status == StatusPending {
			summary.Pending++
		}
	}
	for _, s := range gov {
		if s.Status == StatusPending {
			summary.Pending++
		}
	}
	return summary
}
