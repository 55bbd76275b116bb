package logistics

import (
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/shopspring/decimal"
)

// AddTransportRequest represents a request to record shipment costs
type AddTransportRequest struct {
	OrderID         string          `json:"order_id" binding:"required"`
	TransporterName string          `json:"transporter_name" binding:"required,min=1,max=200"`
	TransportCost   decimal.Decimal `json:"transport_cost"`
	LoadingCost     decimal.Decimal `json:"loading_cost"`
	UnloadingCost   decimal.Decimal `json:"unloading_cost"`
	LabourCharge    decimal.Decimal `json:"labour_charge"`
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
}

// TransportResponse represents a transport entry in API responses
type TransportResponse struct {
	ID              string          `json:"id"`
	OrderID         string          `json:"order_id"`
	TransporterName string          `json:"transporter_name"`
	TransportCost   decimal.Decimal `json:"transport_cost"`
	LoadingCost     decimal.Decimal `json:"loading_cost"`
	UnloadingCost   decimal.Decimal `json:"unloading_cost"`
	LabourCharge    decimal.Decimal `json:"labour_charge"`
	Total           decimal.Decimal `json:"total"`
	Date            string          `json:"date"`
}

// SummaryResponse aggregates logistics spend
type SummaryResponse struct {
	Count       int             `json:"count"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	AverageCost decimal.Decimal `json:"average_cost"`
}

// ToTransportResponse converts a domain entry to a response DTO
func ToTransportResponse(e logistics.TransportEntry) TransportResponse {
	return TransportResponse{
		ID:              e.ID,
		OrderID:         e.OrderID,
		TransporterName: e.TransporterName,
		TransportCost:   e.TransportCost,
		LoadingCost:     e.LoadingCost,
		UnloadingCost:   e.UnloadingCost,
		LabourCharge:    e.LabourCharge,
		Total:           e.Total(),
		Date:            e.Date.Format("2006-01-02"),
	}
}

// ToSummaryResponse converts a domain summary to a response DTO
func ToSummaryResponse(s logistics.Summary) SummaryResponse {
	return SummaryResponse{Count: s.Count, TotalCost: s.TotalCost, AverageCost: s.AverageCost}
}
