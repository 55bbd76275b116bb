package ai

import (
	"context"
	"fmt"

	"github.com/protrack/backend/internal/domain/planner"
	"github.com/protrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// New builds the planner for cfg. Without an API key the planner is
// UnavailablePlanner and the service still starts.
func New(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (planner.Planner, error) {
	if cfg.APIKey == "" {
		logger.Warn("AI planner disabled, no API key configured")
		return UnavailablePlanner{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger.Info("AI planner enabled",
		zap.String("optimization_model", cfg.OptimizationModel),
		zap.String("chat_model", cfg.ChatModel),
	)
	return NewGeminiPlanner(client.Models, Config{
		OptimizationModel: cfg.OptimizationModel,
		ChatModel:         cfg.ChatModel,
		Timeout:           cfg.Timeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
	}, WithLogger(logger.Named("planner"))), nil
}
