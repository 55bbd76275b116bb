package resource

import "github.com/protrack/backend/internal/domain/resource"

// ResourceResponse represents a production resource in API responses
type ResourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Utilization int    `json:"utilization"`
	Status      string `json:"status"`
}

// UpdateStatusRequest represents a request to change a resource's status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToResourceResponse converts a domain resource to a response DTO
func ToResourceResponse(r resource.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Name:        r.Name,
		Type:        string(r.Type),
		Utilization: r.Utilization,
		Status:      string(r.Status),
	}
}
