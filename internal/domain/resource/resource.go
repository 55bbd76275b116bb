package resource

import (
	"strings"

	"github.com/protrack/backend/internal/domain/shared"
)

// Type of production resource
type Type string

const (
	TypeMachine Type = "Machine"
	TypeHuman   Type = "Human"
	TypeStation Type = "Station"
)

// Status of a production resource
type Status string

const (
	StatusOnline      Status = "Online"
	StatusOffline     Status = "Offline"
	StatusMaintenance Status = "Maintenance"
)

// ParseStatus accepts a status case-insensitively
func ParseStatus(s string) (Status, error) {
	for _, known := range []Status{StatusOnline, StatusOffline, StatusMaintenance} {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", shared.NewInvalidInputError("unknown resource status %q", s)
}

// Resource is a machine, crew or station with a utilization reading (0-100)
type Resource struct {
	ID          string
	Name        string
	Type        Type
	Utilization int
	Status      Status
}

// WithStatus returns a copy with the new status. Offline resources report zero utilization.
func (r Resource) WithStatus(status Status) Resource {
	r.Status = status
	if status == StatusOffline {
		r.Utilization = 0
	}
	return r
}

// AverageUtilization returns the mean utilization, rounded down, or 0 for no resources
func AverageUtilization(resources []Resource) int {
	if len(resources) == 0 {
		return 0
	}
	total := 0
	for _, r := range resources {
		total += r.Utilization
	}
	return total / len(resources)
}

// IndexOf returns the position of the resource with the given id, or -1
func IndexOf(resources []Resource, id string) int {
	for idx := range resources {
		if resources[idx].ID == id {
			return idx
		}
	}
	return -1
}
