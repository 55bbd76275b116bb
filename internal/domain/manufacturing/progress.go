package manufacturing

import "slices"

// Progress increments drawn per tick are uniform in [MinIncrement, MaxIncrement]
const (
	MinIncrement = 1
	MaxIncrement = 3
)

// IncrementSource supplies random integers in [0, n). *math/rand.Rand satisfies it.
type IncrementSource interface {
	Intn(n int) int
}

// CanAdvance reports whether the ticker moves this order
func (o ProductionOrder) CanAdvance() bool {
	return o.Status == OrderStatusInProgress && o.Progress < MaxProgress
}

// Advance returns order with progress increased by increment, capped at 100.
// Reaching 100 completes the order. Orders that are not in progress, or are
// already at 100, are returned unchanged.
func Advance(order ProductionOrder, increment int) ProductionOrder {
	if !order.CanAdvance() || increment <= 0 {
		return order
	}
	order.Progress = min(MaxProgress, order.Progress+increment)
	if order.Progress == MaxProgress {
		order.Status = OrderStatusCompleted
	}
	return order
}

// DrawIncrement returns a random increment in [MinIncrement, MaxIncrement]
func DrawIncrement(src IncrementSource) int {
	return MinIncrement + src.Intn(MaxIncrement-MinIncrement+1)
}

// TickResult is the outcome of one ticker step
type TickResult struct {
	Orders    []ProductionOrder
	Advanced  int
	Completed []ProductionOrder
}

// Tick advances every eligible order by one random increment.
// orders is not modified; one increment is drawn per eligible order, in order.
func Tick(orders []ProductionOrder, src IncrementSource) TickResult {
	result := TickResult{
		Orders:    slices.Clone(orders),
		Completed: make([]ProductionOrder, 0),
	}
	for idx, order := range result.Orders {
		if !order.CanAdvance() {
			continue
		}
		next := Advance(order, DrawIncrement(src))
		result.Orders[idx] = next
		result.Advanced++
		if next.Status == OrderStatusCompleted {
			result.Completed = append(result.Completed, next)
		}
	}
	return result
}
