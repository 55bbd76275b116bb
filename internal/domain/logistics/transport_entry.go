package logistics

import (
	"strings"
	"time"

	"github.com/protrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransportEntry is the cost record of one outbound shipment
type TransportEntry struct {
	ID              string
	OrderID         string
	TransporterName string
	TransportCost   decimal.Decimal
	LoadingCost     decimal.Decimal
	UnloadingCost   decimal.Decimal
	LabourCharge    decimal.Decimal
	Date            time.Time
}

// NewTransportEntry validates and creates an entry
func NewTransportEntry(id, orderID, transporter string, transport, loading, unloading, labour decimal.Decimal, date time.Time) (TransportEntry, error) {
	if shared.IsBlank(orderID) {
		return TransportEntry{}, shared.NewInvalidInputError("order id cannot be empty")
	}
	if shared.IsBlank(transporter) {
		return TransportEntry{}, shared.NewInvalidInputError("transporter name cannot be empty")
	}
	for _, cost := range []decimal.Decimal{transport, loading, unloading, labour} {
		if cost.IsNegative() {
			return TransportEntry{}, shared.NewInvalidInputError("costs cannot be negative")
		}
	}
	return TransportEntry{
		ID:              id,
		OrderID:         orderID,
		TransporterName: strings.TrimSpace(transporter),
		TransportCost:   transport,
		LoadingCost:     loading,
		UnloadingCost:   unloading,
		LabourCharge:    labour,
		Date:            date,
	}, nil
}

// Total returns transport + loading + unloading + labour
func (e TransportEntry) Total() decimal.Decimal {
	return e.TransportCost.Add(e.LoadingCost).Add(e.UnloadingCost).Add(e.LabourCharge)
}

// Summary aggregates logistics spend
type Summary struct {
	Count       int
	TotalCost   decimal.Decimal
	AverageCost decimal.Decimal
}

// Summarize totals all entries. The average is rounded to a whole amount
// and is zero when there are no entries.
func Summarize(entries []TransportEntry) Summary {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Total())
	}
	avg := decimal.Zero
	if len(entries) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(entries)))).Round(0)
	}
	return Summary{Count: len(entries), TotalCost: total, AverageCost: avg}
}
