package tool

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/jakeolschewski/toolforge-ai-sub002/internal/db"
	"github.com/jakeolschewski/toolforge-ai-sub002/internal/domain"
	domtool "github.com/jakeolschewski/toolforge-ai-sub002/internal/domain/tool"
)

// --- Upsert ---

func TestUpsert_Create(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var written map[string]string
	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		if key != "toolforge:tool:jasper" {
			t.Errorf("unexpected key: %s", key)
		}
		return false, nil
	}
	ms.hsetFn = func(_ context.Context, _ string, fields map[string]string) error {
		written = fields
		return nil
	}

	created, err := repo.Upsert(ctx, testTool(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected created=true for new tool")
	}
	if written["name"] != "Jasper AI" || written["tags"] != `["writing","marketing"]` {
		t.Errorf("unexpected hash fields: %v", written)
	}
	if written["created_at"] != "2024-03-01T00:00:00Z" {
		t.Errorf("created_at = %q", written["created_at"])
	}
}

func TestUpsert_Update(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

	created, err := repo.Upsert(context.Background(), testTool(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatal("expected created=false for existing tool")
	}
}

func TestUpsert_HSetError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		return errors.New("OOM")
	}

	if _, err := repo.Upsert(context.Background(), testTool(t)); err == nil {
		t.Fatal("expected error on HSET failure")
	}
}

func TestUpsertBatch(t *testing.T) {
	repo, ms := newTestRepo(t)
	var got []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		got = items
		return nil
	}

	second := domtool.Reconstruct(domtool.Attrs{ID: "copy", Name: "Copy.ai"})
	if err := repo.UpsertBatch(context.Background(), []domtool.Tool{testTool(t), second}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Key != "toolforge:tool:jasper" || got[1].Key != "toolforge:tool:copy" {
		t.Errorf("unexpected items: %+v", got)
	}
	if got[1].Fields["features"] != "[]" {
		t.Errorf("nil features should encode as [], got %q", got[1].Fields["features"])
	}
}

// --- Get ---

func TestGet_RoundTrip(t *testing.T) {
	repo, ms := newTestRepo(t)
	fields, err := buildHashFields(testTool(t))
	if err != nil {
		t.Fatal(err)
	}
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return fields, nil
	}

	got, err := repo.Get(context.Background(), "jasper")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testTool(t)
	if got.Name() != want.Name() || got.Rating() != want.Rating() || got.Views() != want.Views() {
		t.Errorf("got %+v, want %+v", got.Attrs(), want.Attrs())
	}
	if tl, ok := got.Tagline(); !ok || tl != "AI writing assistant" {
		t.Errorf("tagline = %q, %v", tl, ok)
	}
	if !slices.Equal(got.Tags(), want.Tags()) || !slices.Equal(got.Features(), want.Features()) {
		t.Errorf("lists differ: %v %v", got.Tags(), got.Features())
	}
	if !got.CreatedAt().Equal(want.CreatedAt()) || !got.Featured() {
		t.Errorf("created_at/featured mismatch: %v %v", got.CreatedAt(), got.Featured())
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_MissingTagline(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllFn = func(_ context.Context, _ string) (map[string]string, error) {
		return map[string]string{"name": "Midjourney", "rating": "bogus"}, nil
	}

	got, err := repo.Get(context.Background(), "mj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.Tagline(); ok {
		t.Error("expected no tagline")
	}
	if got.Rating() != 0 {
		t.Errorf("malformed rating should be 0, got %v", got.Rating())
	}
}

// --- List ---

func TestList_FiltersAndOrders(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "toolforge:tool:*" {
			t.Errorf("unexpected pattern: %s", pattern)
		}
		return []string{"toolforge:tool:mj", "toolforge:tool:copy", "toolforge:tool:gone"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		want := []string{"toolforge:tool:copy", "toolforge:tool:gone", "toolforge:tool:mj"}
		if !slices.Equal(keys, want) {
			t.Errorf("keys = %v, want %v", keys, want)
		}
		return []map[string]string{
			{"name": "Copy.ai", "category": "Writing"},
			{},
			{"name": "Midjourney", "category": "image"},
		}, nil
	}

	all, err := repo.List(context.Background(), domtool.Filter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].ID() != "copy" || all[1].ID() != "mj" {
		t.Errorf("unexpected list: %v", all)
	}

	writing, err := repo.List(context.Background(), domtool.Filter{Category: "writing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(writing) != 1 || writing[0].ID() != "copy" {
		t.Errorf("category filter: %v", writing)
	}
}

func TestList_Empty(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		t.Fatal("HGETALL must not run for an empty keyspace")
		return nil, nil
	}

	got, err := repo.List(context.Background(), domtool.Filter{})
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v, %v", got, err)
	}
}

func TestList_ScanError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return nil, &db.Error{Op: db.OpScan, Err: errors.New("conn reset")}
	}

	if _, err := repo.List(context.Background(), domtool.Filter{}); err == nil {
		t.Fatal("expected error")
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo(t)
	var deleted []string
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.delFn = func(_ context.Context, keys ...string) error {
		deleted = keys
		return nil
	}

	if err := repo.Delete(context.Background(), "jasper"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "toolforge:tool:jasper" {
		t.Errorf("deleted = %v", deleted)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
