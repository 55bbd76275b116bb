// Package state owns the single application-state snapshot that every
// service reads from and commits to.
package state

import (
	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/logistics"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/quality"
	"github.com/protrack/backend/internal/domain/resource"
	"github.com/protrack/backend/internal/domain/workforce"
)

// State is an immutable snapshot of every collection the plant tracks.
// Mutations build new slices; a State handed out by the Controller is never
// modified afterwards.
type State struct {
	Version    uint64
	Orders     []manufacturing.ProductionOrder // newest first
	Inventory  []inventory.InventoryItem
	Processes  []manufacturing.ProductionProcess
	Resources  []resource.Resource
	Transports []logistics.TransportEntry // newest first
	RawSamples []quality.RawMaterialSample
	GovSamples []quality.GovProductSample
	Warehouses []workforce.Warehouse
	Attendance []workforce.AttendanceRecord
}

// IsEmpty reports whether the snapshot holds no data at all
func (s State) IsEmpty() bool {
	return len(s.Orders) == 0 && len(s.Inventory) == 0 && len(s.Processes) == 0 &&
		len(s.Resources) == 0 && len(s.Transports) == 0 && len(s.RawSamples) == 0 &&
		len(s.GovSamples) == 0 && len(s.Warehouses) == 0 && len(s.Attendance) == 0
}

// Prepend returns a new slice with v in front of s
func Prepend[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, v...)
	return append(out, s...)
}

// Append returns a new slice with v after s
func Append[T any](s []T, v ...T) []T {
	out := make([]T, 0, len(s)+len(v))
	out = append(out, s...)
	return append(out, v...)
}

// ReplaceAt returns a new slice with s[idx] set to v
func ReplaceAt[T any](s []T, idx int, v T) []T {
	out := make([]T, len(s))
	copy(out, s)
	out[idx] = v
	return out
}

// RemoveAt returns a new slice without s[idx]
func RemoveAt[T any](s []T, idx int) []T {
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:idx]...)
	return append(out, s[idx+1:]...)
}
