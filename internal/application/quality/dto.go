package quality

import (
	"time"

	"github.com/protrack/backend/internal/domain/quality"
)

const dateLayout = "2006-01-02"

// AddRawSampleRequest represents an incoming material lot sent to the lab
type AddRawSampleRequest struct {
	MaterialName  string `json:"material_name" binding:"required,max=200"`
	BatchNumber   string `json:"batch_number" binding:"required,max=100"`
	Supplier      string `json:"supplier" binding:"max=200"`
	LabTechnician string `json:"lab_technician" binding:"max=100"`
	Remarks       string `json:"remarks" binding:"max=1000"`
	ReceivedDate  string `json:"received_date" binding:"omitempty,datetime=2006-01-02"`
}

// AddGovSampleRequest represents a regulator sample of a finished product
type AddGovSampleRequest struct {
	ProductName    string `json:"product_name" binding:"required,max=200"`
	OrderNumber    string `json:"order_number" binding:"required,max=50"`
	OfficialName   string `json:"official_name" binding:"max=200"`
	Department     string `json:"department" binding:"max=200"`
	Remarks        string `json:"remarks" binding:"max=1000"`
	CollectionDate string `json:"collection_date" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateStatusRequest records a lab verdict
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Pass Fail"`
}

// RawSampleResponse represents a raw material sample in API responses
type RawSampleResponse struct {
	ID            string `json:"id"`
	MaterialName  string `json:"material_name"`
	BatchNumber   string `json:"batch_number"`
	Supplier      string `json:"supplier"`
	ReceivedDate  string `json:"received_date"`
	TestDate      string `json:"test_date,omitempty"`
	Status        string `json:"status"`
	LabTechnician string `json:"lab_technician"`
	Remarks       string `json:"remarks"`
}

// GovSampleResponse represents a regulator sample in API responses
type GovSampleResponse struct {
	ID             string `json:"id"`
	ProductName    string `json:"product_name"`
	OrderNumber    string `json:"order_number"`
	OfficialName   string `json:"official_name"`
	Department     string `json:"department"`
	CollectionDate string `json:"collection_date"`
	ResultDate     string `json:"result_date,omitempty"`
	Status         string `json:"status"`
	Remarks        string `json:"remarks"`
}

// SummaryResponse counts samples across both registers
type SummaryResponse struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
}

// ToRawSampleResponse converts a domain sample to a response DTO
func ToRawSampleResponse(s quality.RawMaterialSample) RawSampleResponse {
	return RawSampleResponse{
		ID:            s.ID,
		MaterialName:  s.MaterialName,
		BatchNumber:   s.BatchNumber,
		Supplier:      s.Supplier,
		ReceivedDate:  s.ReceivedDate.Format(dateLayout),
		TestDate:      formatOptional(s.TestDate),
		Status:        string(s.Status),
		LabTechnician: s.LabTechnician,
		Remarks:       s.Remarks,
	}
}

// ToGovSampleResponse converts a domain sample to a response DTO
func ToGovSampleResponse(s quality.GovProductSample) GovSampleResponse {
	return GovSampleResponse{
		ID:             s.ID,
		ProductName:    s.ProductName,
		OrderNumber:    s.OrderNumber,
		OfficialName:   s.OfficialName,
		Department:     s.Department,
		CollectionDate: s.CollectionDate.Format(dateLayout),
		ResultDate:     formatOptional(s.ResultDate),
		Status:         string(s.Status),
		Remarks:        s.Remarks,
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
