package ai

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/resource"
	"google.golang.org/genai"
)

const (
	optimizationInstruction = "You are an expert Production Planning & Control (PCP) consultant. " +
		"Analyze the provided manufacturing data and provide actionable optimizations in JSON format. " +
		"Focus on bottlenecks, inventory risks, and scheduling efficiency."

	schedulingInstructionFormat = "You are a production scheduler. Based on product name and quantity, " +
		"suggest a start and end date. Current date is %s. Respond in JSON format."

	chatInstruction = "You are the ProTrack PCP Virtual Assistant. Help the user manage production " +
		"schedules, quality logs, and resource allocation. Be professional, data-driven, and concise."
)

// promptOrder is the JSON shape of an order inside a prompt
type promptOrder struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Progress    int    `json:"progress"`
}

type promptResource struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Utilization int    `json:"utilization"`
	Status      string `json:"status"`
}

type promptItem struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	ReorderLevel string `json:"reorderLevel"`
	Status       string `json:"status"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(manufacturing.DateLayout)
}

func toPromptOrders(orders []manufacturing.ProductionOrder) []promptOrder {
	out := make([]promptOrder, len(orders))
	for i, o := range orders {
		out[i] = promptOrder{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			ProductName: o.ProductName,
			Quantity:    o.Quantity,
			StartDate:   formatDate(o.StartDate),
			EndDate:     formatDate(o.EndDate),
			Status:      string(o.Status),
			Priority:    string(o.Priority),
			Progress:    o.Progress,
		}
	}
	return out
}

func toPromptResources(resources []resource.Resource) []promptResource {
	out := make([]promptResource, len(resources))
	for i, r := range resources {
		out[i] = promptResource{ID: r.ID, Name: r.Name, Type: string(r.Type), Utilization: r.Utilization, Status: string(r.Status)}
	}
	return out
}

func toPromptItems(items []inventory.InventoryItem) []promptItem {
	out := make([]promptItem, len(items))
	for i, item := range items {
		out[i] = promptItem{
			ID:           item.ID,
			Name:         item.Name,
			SKU:          item.SKU,
			Category:     string(item.Group),
			Quantity:     item.Quantity.String(),
			Unit:         item.Unit,
			ReorderLevel: item.ReorderLevel.String(),
			Status:       string(item.Status),
		}
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func optimizationPrompt(orders []manufacturing.ProductionOrder, resources []resource.Resource, items []inventory.InventoryItem) string {
	return fmt.Sprintf("Analyze current production state and suggest optimizations.\nOrders: %s\nResources: %s\nInventory: %s\n",
		mustJSON(toPromptOrders(orders)),
		mustJSON(toPromptResources(resources)),
		mustJSON(toPromptItems(items)),
	)
}

func schedulePrompt(productName string, quantity int64, history []manufacturing.ProductionOrder) string {
	return fmt.Sprintf("Predict production timeline for %d units of %s.\nReference historical data: %s\n",
		quantity, productName, mustJSON(toPromptOrders(history)))
}

func stringArray(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

var optimizationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"criticalRisks": stringArray("High priority issues found in current setup."),
		"optimizations": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":       {Type: genai.TypeString},
					"description": {Type: genai.TypeString},
					"impact": {
						Type:        genai.TypeString,
						Description: "The impact level: High, Medium, or Low.",
						Enum:        []string{"High", "Medium", "Low"},
					},
				},
				Required: []string{"title", "description", "impact"},
			},
		},
		"suggestedPriority": stringArray("Suggested order of execution for orders."),
	},
	Required: []string{"criticalRisks", "optimizations", "suggestedPriority"},
}

var scheduleSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"startDate": {Type: genai.TypeString, Description: "Suggested start date (YYYY-MM-DD)"},
		"endDate":   {Type: genai.TypeString, Description: "Suggested end date (YYYY-MM-DD)"},
		"rationale": {Type: genai.TypeString, Description: "Short explanation for this estimate"},
	},
	Required: []string{"startDate", "endDate", "rationale"},
}
