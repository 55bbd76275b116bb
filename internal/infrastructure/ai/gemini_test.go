package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/protrack/backend/internal/domain/manufacturing"
	"github.com/protrack/backend/internal/domain/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	text     string
	err      error
	delay    time.Duration
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
	calls    int
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	f.config = config
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func newTestPlanner(gen *fakeGenerator) *GeminiPlanner {
	return NewGeminiPlanner(gen, Config{
		OptimizationModel: "gemini-3-pro-preview",
		ChatModel:         "gemini-3-flash-preview",
		Timeout:           time.Second,
	}, WithClock(func() time.Time { return time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC) }))
}

func TestGeminiPlanner_GetOptimizations(t *testing.T) {
	gen := &fakeGenerator{text: `{
		"criticalRisks": ["Compost below reorder level"],
		"optimizations": [{"title": "Batch mixing", "description": "Group NPK orders", "impact": "high"}],
		"suggestedPriority": ["ORD-0002", "ORD-0001"]
	}`}
	p := newTestPlanner(gen)

	got, err := p.GetOptimizations(context.Background(),
		[]manufacturing.ProductionOrder{{ID: "o1", ProductName: "NPK Mix", Quantity: 5}}, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, "gemini-3-pro-preview", gen.model)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Same(t, optimizationSchema, gen.config.ResponseSchema)
	assert.Contains(t, gen.contents[0].Parts[0].Text, `"productName":"NPK Mix"`)
	assert.Equal(t, []string{"Compost below reorder level"}, got.CriticalRisks)
	require.Len(t, got.Optimizations, 1)
	assert.Equal(t, planner.ImpactHigh, got.Optimizations[0].Impact)
}

func TestGeminiPlanner_GetOptimizationsRejectsBadPayloads(t *testing.T) {
	payloads := map[string]string{
		"not json":       `here are some ideas`,
		"missing fields": `{"criticalRisks": []}`,
		"bad impact":     `{"criticalRisks": [], "optimizations": [{"title": "x", "description": "y", "impact": "Huge"}], "suggestedPriority": []}`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			p := newTestPlanner(&fakeGenerator{text: payload})
			_, err := p.GetOptimizations(context.Background(), nil, nil, nil)
			assert.Equal(t, planner.KindInvalidResponse, planner.KindOf(err))
		})
	}
}

func TestGeminiPlanner_PredictSchedule(t *testing.T) {
	gen := &fakeGenerator{text: `{"startDate": "2026-10-20", "endDate": "2026-10-24", "rationale": "Similar batches took 4 days"}`}
	p := newTestPlanner(gen)

	got, err := p.PredictSchedule(context.Background(), "Bio Fertilizer", 100, nil)

	require.NoError(t, err)
	assert.Equal(t, "2026-10-20", got.StartDate)
	assert.Equal(t, "gemini-3-flash-preview", gen.model)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "Current date is 2026-10-16")
	assert.Contains(t, gen.contents[0].Parts[0].Text, "100 units of Bio Fertilizer")
}

func TestGeminiPlanner_PredictScheduleRejectsInvertedWindow(t *testing.T) {
	p := newTestPlanner(&fakeGenerator{text: `{"startDate": "2026-10-24", "endDate": "2026-10-20", "rationale": "?"}`})

	_, err := p.PredictSchedule(context.Background(), "X", 1, nil)

	assert.Equal(t, planner.KindInvalidResponse, planner.KindOf(err))
}

func TestGeminiPlanner_Chat(t *testing.T) {
	gen := &fakeGenerator{text: "Mixer A is at 80% utilization."}
	p := newTestPlanner(gen)

	reply, err := p.Chat(context.Background(), []planner.ChatMessage{
		{Role: planner.RoleUser, Text: "hi"},
		{Role: planner.RoleModel, Text: "hello"},
	}, "How busy is Mixer A?")

	require.NoError(t, err)
	assert.Equal(t, "Mixer A is at 80% utilization.", reply)
	require.Len(t, gen.contents, 3)
	assert.Equal(t, "model", gen.contents[1].Role)
	assert.Equal(t, "How busy is Mixer A?", gen.contents[2].Parts[0].Text)
	assert.Contains(t, gen.config.SystemInstruction.Parts[0].Text, "ProTrack PCP Virtual Assistant")
}

func TestGeminiPlanner_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
		want planner.ErrorKind
	}{
		{"timeout", &fakeGenerator{delay: 5 * time.Second}, planner.KindTimeout},
		{"quota", &fakeGenerator{err: genai.APIError{Code: 429, Message: "quota exceeded"}}, planner.KindRateLimited},
		{"overloaded", &fakeGenerator{err: genai.APIError{Code: 503, Message: "overloaded"}}, planner.KindUnavailable},
		{"server error", &fakeGenerator{err: genai.APIError{Code: 500, Message: "boom"}}, planner.KindUpstream},
		{"transport", &fakeGenerator{err: errors.New("connection reset")}, planner.KindUpstream},
		{"empty", &fakeGenerator{text: "  "}, planner.KindInvalidResponse},
		{"caller canceled", &fakeGenerator{err: context.Canceled}, planner.KindCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewGeminiPlanner(tt.gen, Config{Timeout: 20 * time.Millisecond})
			_, err := p.Chat(context.Background(), nil, "hello")

			var perr *planner.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.want, perr.Kind)
			assert.Equal(t, OpChat, perr.Op)
		})
	}
}

func TestGeminiPlanner_CanceledContextIsNotUpstream(t *testing.T) {
	gen := &fakeGenerator{delay: 5 * time.Second}
	p := NewGeminiPlanner(gen, Config{Timeout: time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Chat(ctx, nil, "hello")

	assert.Equal(t, planner.KindCanceled, planner.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGeminiPlanner_LocalRateLimit(t *testing.T) {
	gen := &fakeGenerator{text: "ok"}
	p := NewGeminiPlanner(gen, Config{RequestsPerMinute: 1})

	_, err := p.Chat(context.Background(), nil, "one")
	require.NoError(t, err)
	_, err = p.Chat(context.Background(), nil, "two")

	assert.Equal(t, planner.KindRateLimited, planner.KindOf(err))
	assert.Equal(t, 1, gen.calls)
}

func TestUnavailablePlanner(t *testing.T) {
	var p planner.Planner = UnavailablePlanner{}

	_, err := p.GetOptimizations(context.Background(), nil, nil, nil)
	assert.Equal(t, planner.KindUnavailable, planner.KindOf(err))
	assert.ErrorIs(t, err, planner.ErrNotConfigured)

	_, err = p.PredictSchedule(context.Background(), "X", 1, nil)
	assert.Equal(t, planner.KindUnavailable, planner.KindOf(err))

	_, err = p.Chat(context.Background(), nil, "hi")
	assert.Equal(t, planner.KindUnavailable, planner.KindOf(err))
}
