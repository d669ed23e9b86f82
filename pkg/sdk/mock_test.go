package toolforge

import (
	"context"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/search/query"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
	healthuc "github.com/jakeolschewski/toolforge-ai-sub002/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn  func(ctx context.Context, q query.Query) ([]domtool.Tool, bool, error)
	suggestFn func(ctx context.Context, text string, limit int) ([]string, error)
	resetFn   func(ctx context.Context) error
}

func (m *mockSearchUC) Search(ctx context.Context, q query.Query) ([]domtool.Tool, bool, error) {
	return m.searchFn(ctx, q)
}

func (m *mockSearchUC) Suggest(ctx context.Context, text string, limit int) ([]string, error) {
	return m.suggestFn(ctx, text, limit)
}

func (m *mockSearchUC) ResetCache(ctx context.Context) error {
	return m.resetFn(ctx)
}

// --- toolWriter mock ---

type mockWriter struct {
	upsertFn func(ctx context.Context, tools []domtool.Tool) error
}

func (m *mockWriter) UpsertBatch(ctx context.Context, tools []domtool.Tool) error {
	return m.upsertFn(ctx, tools)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func strPtr(s string) *string { return &s }

func directory() []Tool {
	return []Tool{
		{
			ID: "jasper", Name: "Jasper AI", Tagline: strPtr("AI writing assistant"),
			Description: "Long-form content generator", Tags: []string{"writing", "marketing"},
			Category: "text", Pricing: "paid", Price: "$49/mo", Rating: 4.5, Views: 1200,
		},
		{
			ID: "copy", Name: "Copy.ai", Description: "Marketing copy in seconds",
			Tags: []string{"writing", "marketing"}, Category: "text", Pricing: "free",
			Price: "Free", Rating: 4.8, Views: 300,
		},
		{
			ID: "mj", Name: "Midjourney", Description: "Image generation",
			Tags: []string{"image"}, Category: "image", Pricing: "paid",
			Price: "$10/mo", Rating: 4.2, Views: 5000, Featured: true,
		},
	}
}

func testClient(search searchUseCase, health healthUseCase, writer toolWriter) *Client {
	return &Client{
		searchSvc: search,
		healthSvc: health,
		writer:    writer,
	}
}
