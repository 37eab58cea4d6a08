package optimize

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/seo"
)

// mockProvider implements llm.Provider for testing.
type mockProvider struct {
	response string
	err      error
	block    chan struct{} // when set, Generate waits until closed
	started  chan struct{} // when set, closed once Generate is entered
	once     sync.Once
}

func (m *mockProvider) Generate(ctx context.Context, _ string, _ int) (string, error) {
	if m.started != nil {
		m.once.Do(func() { close(m.started) })
	}
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.response, m.err
}

func (m *mockProvider) IsConfigured() bool { return true }

func testSnapshot() *article.Snapshot {
	snap := &article.Snapshot{}
	snap.Step1.Title = "A Guide to Gardening"
	snap.Step1.PrimaryKeyword = "seo tips"
	return snap
}

func TestImproveUsesProviderValue(t *testing.T) {
	opt := New(&mockProvider{response: `{"value": "SEO Tips: A Guide to Gardening"}`}, seo.DefaultRegistry(), 256)

	got, err := opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	if got != "SEO Tips: A Guide to Gardening" {
		t.Errorf("expected provider value, got %q", got)
	}
}

func TestImproveFallsBackOnProviderError(t *testing.T) {
	opt := New(&mockProvider{err: errors.New("boom")}, seo.DefaultRegistry(), 256)

	got, err := opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	// Deterministic fallback still includes the keyword.
	if got == "" || got == "A Guide to Gardening" {
		t.Errorf("expected deterministic suggestion, got %q", got)
	}
}

func TestImproveFallsBackOnUnparseableResponse(t *testing.T) {
	opt := New(&mockProvider{response: "definitely not json"}, seo.DefaultRegistry(), 256)

	got, err := opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	if got == "" {
		t.Error("expected non-empty fallback suggestion")
	}
}

func TestImproveNilProviderUsesDeterministic(t *testing.T) {
	opt := New(nil, seo.DefaultRegistry(), 256)

	got, err := opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	if err != nil {
		t.Fatalf("Improve: %v", err)
	}
	if got == "" {
		t.Error("expected deterministic suggestion with nil provider")
	}
}

func TestImproveUnknownCriterion(t *testing.T) {
	opt := New(nil, seo.DefaultRegistry(), 256)

	if _, err := opt.Improve(context.Background(), seo.CriterionID(999), testSnapshot()); err == nil {
		t.Error("expected error for unknown criterion")
	}
}

func TestImproveSupersededRequestIsDiscarded(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{})
	provider := &mockProvider{response: `{"value": "stale"}`, block: block, started: started}
	opt := New(provider, seo.DefaultRegistry(), 256)

	var wg sync.WaitGroup
	wg.Add(1)

	var staleErr error
	go func() {
		defer wg.Done()
		_, staleErr = opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	}()
	<-started

	// Second request bumps the generation while the first is blocked.
	provider2 := &mockProvider{response: `{"value": "fresh"}`}
	opt.provider = provider2
	got, err := opt.Improve(context.Background(), seo.KeywordInTitle, testSnapshot())
	if err != nil {
		t.Fatalf("second Improve: %v", err)
	}
	if got != "fresh" {
		t.Errorf("expected fresh value, got %q", got)
	}

	close(block)
	wg.Wait()

	if !errors.Is(staleErr, ErrSuperseded) {
		t.Errorf("expected ErrSuperseded for the stale request, got %v", staleErr)
	}
}

func TestImproveRespectsCancellation(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	opt := New(&mockProvider{response: `{"value": "x"}`, block: block}, seo.DefaultRegistry(), 256)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := opt.Improve(ctx, seo.KeywordInTitle, testSnapshot())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
