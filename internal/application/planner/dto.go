package planner

// PredictScheduleRequest asks for a production window for a new batch
type PredictScheduleRequest struct {
	ProductName string `json:"product_name" binding:"required,min=1,max=200"`
	Quantity    int64  `json:"quantity" binding:"required,gt=0"`
}

// ChatTurn is one prior message of the conversation
type ChatTurn struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required"`
}

// ChatRequest sends a message with the conversation so far
type ChatRequest struct {
	History []ChatTurn `json:"history" binding:"max=50,dive"`
	Message string     `json:"message" binding:"required,min=1,max=4000"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
