package seed

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/protrack/backend/internal/application/state"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/workforce"
)

// Fake returns base with n generated orders prepended and a few attendance
// rows per warehouse. The same seed always yields the same records.
// Generated orders are backlog: they do not consume inventory.
func Fake(base state.State, n int, seed int64, now time.Time) state.State {
	f := gofakeit.New(uint64(seed))

	products := make([]string, 0, len(base.Processes))
	for _, p := range base.Processes {
		products = append(products, p.ProductName)
	}

	orders := make([]manufacturing.ProductionOrder, 0, n)
	for range n {
		orders = append(orders, fakeOrder(f, products, now))
	}

	attendance := make([]workforce.AttendanceRecord, 0)
	for _, w := range base.Warehouses {
		for range f.IntRange(2, 5) {
			attendance = append(attendance, workforce.AttendanceRecord{
				ID:          f.UUID(),
				WarehouseID: w.ID,
				WorkerName:  f.Name(),
				Date:        now.AddDate(0, 0, -f.IntRange(0, 6)).Truncate(24 * time.Hour),
				Status: workforce.AttendanceStatus(f.RandomString([]string{
					string(workforce.AttendancePresent), string(workforce.AttendancePresent),
					string(workforce.AttendanceAbsent), string(workforce.AttendanceHalfDay), string(workforce.AttendanceLeave),
				})),
				Shift: workforce.Shift(f.RandomString([]string{
					string(workforce.ShiftMorning), string(workforce.ShiftEvening), string(workforce.ShiftNight),
				})),
			})
		}
	}

	base.Orders = state.Prepend(base.Orders, orders...)
	base.Attendance = state.Prepend(base.Attendance, attendance...)
	return base
}

func fakeOrder(f *gofakeit.Faker, products []string, now time.Time) manufacturing.ProductionOrder {
	name := f.ProductName()
	if len(products) > 0 && f.Bool() {
		name = products[f.IntRange(0, len(products)-1)]
	}

	statuses := make([]string, len(manufacturing.AllOrderStatuses))
	for i, s := range manufacturing.AllOrderStatuses {
		statuses[i] = string(s)
	}
	status := manufacturing.OrderStatus(f.RandomString(statuses))

	progress := 0
	switch status {
	case manufacturing.OrderStatusCompleted:
		progress = manufacturing.MaxProgress
	case manufacturing.OrderStatusInProgress, manufacturing.OrderStatusQualityCheck, manufacturing.OrderStatusDelayed:
		progress = f.IntRange(1, manufacturing.MaxProgress-1)
	}

	start := now.AddDate(0, 0, f.IntRange(-10, 5)).Truncate(24 * time.Hour)
	return manufacturing.ProductionOrder{
		ID:          f.UUID(),
		OrderNumber: fmt.Sprintf("ORD-%s", f.DigitN(4)),
		ProductName: name,
		Quantity:    int64(f.IntRange(10, 2000)),
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, f.IntRange(0, 7)),
		Status:      status,
		Priority:    manufacturing.Priority(f.RandomString([]string{"Low", "Medium", "High"})),
		Progress:    progress,
	}
}
