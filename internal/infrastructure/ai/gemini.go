// Package ai implements the production-planning assistant on top of the Gemini API.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/protrack/backend/internal/domain/inventory"
	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/planner"
	"github.com/protrack/backend/internal/domain/resource"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Operation names reported in planner errors
const (
	OpOptimizations   = "optimizations"
	OpPredictSchedule = "predict_schedule"
	OpChat            = "chat"
)

var (
	errLocalRateLimit = errors.New("local request budget exhausted")
	errEmptyResponse  = errors.New("model returned an empty response")
)

// ContentGenerator is the subset of the genai client the planner needs.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Config holds the planner's model selection and limits
type Config struct {
	OptimizationModel string
	ChatModel         string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Option configures a GeminiPlanner
type Option func(*GeminiPlanner)

// WithLogger sets the planner logger
func WithLogger(l *zap.Logger) Option {
	return func(p *GeminiPlanner) {
		p.logger = l
	}
}

// WithClock overrides the clock used for the scheduler's "current date"
func WithClock(now func() time.Time) Option {
	return func(p *GeminiPlanner) {
		p.now = now
	}
}

// GeminiPlanner implements planner.Planner with structured JSON generation
type GeminiPlanner struct {
	models  ContentGenerator
	cfg     Config
	limiter *rate.Limiter
	logger  *zap.Logger
	now     func() time.Time
}

var _ planner.Planner = (*GeminiPlanner)(nil)

// NewGeminiPlanner creates a planner issuing requests through models
func NewGeminiPlanner(models ContentGenerator, cfg Config, opts ...Option) *GeminiPlanner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	limit := rate.Inf
	burst := 1
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
		burst = min(cfg.RequestsPerMinute, 5)
	}

	p := &GeminiPlanner{
		models:  models,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetOptimizations asks the model for risks, optimizations and a suggested order priority
func (p *GeminiPlanner) GetOptimizations(ctx context.Context, orders []manufacturing.ProductionOrder, resources []resource.Resource, items []inventory.InventoryItem) (planner.Optimizations, error) {
	text, err := p.generate(ctx, OpOptimizations, p.cfg.OptimizationModel,
		genai.Text(optimizationPrompt(orders, resources, items)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(optimizationInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    optimizationSchema,
		})
	if err != nil {
		return planner.Optimizations{}, err
	}
	return decodeOptimizations(text)
}

// PredictSchedule asks the model for a start and end date for a new batch
func (p *GeminiPlanner) PredictSchedule(ctx context.Context, productName string, quantity int64, recentHistory []manufacturing.ProductionOrder) (planner.SchedulePrediction, error) {
	today := p.now().Format(manufacturing.DateLayout)
	text, err := p.generate(ctx, OpPredictSchedule, p.cfg.ChatModel,
		genai.Text(schedulePrompt(productName, quantity, recentHistory)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(fmt.Sprintf(schedulingInstructionFormat, today), genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    scheduleSchema,
		})
	if err != nil {
		return planner.SchedulePrediction{}, err
	}
	return decodeSchedule(text)
}

// Chat continues a conversation with the virtual assistant
func (p *GeminiPlanner) Chat(ctx context.Context, history []planner.ChatMessage, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		if turn.Role == planner.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))

	return p.generate(ctx, OpChat, p.cfg.ChatModel, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatInstruction, genai.RoleUser),
	})
}

func (p *GeminiPlanner) generate(ctx context.Context, op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	if !p.limiter.Allow() {
		return "", planner.NewError(op, planner.KindRateLimited, errLocalRateLimit)
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		perr := classify(op, err)
		log := p.logger.Warn
		if perr.Kind == planner.KindCanceled {
			log = p.logger.Debug
		}
		log("Planner request failed",
			zap.String("operation", op),
			zap.String("model", model),
			zap.String("kind", string(perr.Kind)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", perr
	}

	text := ""
	if resp != nil {
		text = strings.TrimSpace(resp.Text())
	}
	if text == "" {
		return "", planner.NewError(op, planner.KindInvalidResponse, errEmptyResponse)
	}
	p.logger.Debug("Planner request completed",
		zap.String("operation", op),
		zap.String("model", model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}

// classify maps a client error onto a planner error kind
func classify(op string, err error) *planner.Error {
	if errors.Is(err, context.Canceled) {
		return planner.NewError(op, planner.KindCanceled, err)
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return planner.NewError(op, kindForStatus(apiErr.Code), err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return planner.NewError(op, kindForStatus(apiErrPtr.Code), err)
	}
	return planner.NewError(op, planner.KindUpstream, err)
}

func kindForStatus(code int) planner.ErrorKind {
	switch code {
	case http.StatusTooManyRequests:
		return planner.KindRateLimited
	case http.StatusServiceUnavailable, http.StatusUnauthorized, http.StatusForbidden:
		return planner.KindUnavailable
	case http.StatusGatewayTimeout:
		return planner.KindTimeout
	default:
		return planner.KindUpstream
	}
}

func decodeOptimizations(text string) (planner.Optimizations, error) {
	var out planner.Optimizations
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return planner.Optimizations{}, planner.NewError(OpOptimizations, planner.KindInvalidResponse, err)
	}
	if out.CriticalRisks == nil || out.Optimizations == nil || out.SuggestedPriority == nil {
		return planner.Optimizations{}, planner.NewError(OpOptimizations, planner.KindInvalidResponse,
			errors.New("response is missing required fields"))
	}
	for i, o := range out.Optimizations {
		impact, ok := parseImpact(string(o.Impact))
		if !ok || strings.TrimSpace(o.Title) == "" {
			return planner.Optimizations{}, planner.NewError(OpOptimizations, planner.KindInvalidResponse,
				fmt.Errorf("optimization %d is malformed (impact %q)", i, o.Impact))
		}
		out.Optimizations[i].Impact = impact
	}
	return out, nil
}

func parseImpact(s string) (planner.Impact, bool) {
	for _, known := range []planner.Impact{planner.ImpactHigh, planner.ImpactMedium, planner.ImpactLow} {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, true
		}
	}
	return "", false
}

func decodeSchedule(text string) (planner.SchedulePrediction, error) {
	var out planner.SchedulePrediction
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return planner.SchedulePrediction{}, planner.NewError(OpPredictSchedule, planner.KindInvalidResponse, err)
	}
	start, errStart := time.Parse(manufacturing.DateLayout, out.StartDate)
	end, errEnd := time.Parse(manufacturing.DateLayout, out.EndDate)
	if err := errors.Join(errStart, errEnd); err != nil {
		return planner.SchedulePrediction{}, planner.NewError(OpPredictSchedule, planner.KindInvalidResponse, err)
	}
	if end.Before(start) {
		return planner.SchedulePrediction{}, planner.NewError(OpPredictSchedule, planner.KindInvalidResponse,
			fmt.Errorf("end date %s is before start date %s", out.EndDate, out.StartDate))
	}
	return out, nil
}
