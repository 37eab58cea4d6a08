package optimize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/llm"
	"github.com/seoscribe/seoscribe/internal/seo"
)

// ErrSuperseded is returned when a newer optimize request was started
// while this one was in flight. The stale response is discarded so it can
// never overwrite the newer result.
var ErrSuperseded = errors.New("optimize request superseded")

// ContentImprover proposes a replacement value for the field a criterion
// governs. Implementations may be non-deterministic.
type ContentImprover interface {
	Improve(ctx context.Context, id seo.CriterionID, snap *article.Snapshot) (string, error)
}

const improvePrompt = `You are an SEO copywriter improving one field of a draft article.

Primary keyword: %s
Criterion to satisfy: %s
Current field value:
%s

Article context:
Title: %s
Meta description: %s
Content excerpt:
%s

Rewrite the field so the criterion passes. Keep the author's tone, keep it natural, and never stuff the keyword.

Respond with ONLY this JSON:
{
    "value": "the improved field value"
}`

const defaultTimeout = 60 * time.Second

// Optimizer is the AI-backed ContentImprover. When no provider is
// available, or the provider fails, it falls back to the registry's
// deterministic suggestion so callers always receive a usable value.
type Optimizer struct {
	provider  llm.Provider
	registry  *seo.Registry
	maxTokens int
	timeout   time.Duration
	gen       atomic.Uint64
}

// New creates an Optimizer. provider may be nil.
func New(provider llm.Provider, registry *seo.Registry, maxTokens int) *Optimizer {
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return &Optimizer{
		provider:  provider,
		registry:  registry,
		maxTokens: maxTokens,
		timeout:   defaultTimeout,
	}
}

// Improve proposes a new value for the criterion's field. Each call
// supersedes any in-flight call: the older call returns ErrSuperseded
// instead of its (now stale) result.
func (o *Optimizer) Improve(ctx context.Context, id seo.CriterionID, snap *article.Snapshot) (string, error) {
	if snap == nil {
		snap = &article.Snapshot{}
	}

	crit, ok := o.registry.Criterion(id)
	if !ok {
		return "", fmt.Errorf("unknown criterion %d", id)
	}

	fallback := o.registry.Improve(id, snap)
	if o.provider == nil || !o.provider.IsConfigured() {
		return fallback, nil
	}

	gen := o.gen.Add(1)

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	response, err := o.provider.Generate(ctx, o.buildPrompt(crit, snap), o.maxTokens)

	// A newer request took over while we waited; drop this result.
	if o.gen.Load() != gen {
		return "", ErrSuperseded
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if err != nil {
		log.Printf("AI optimization failed for criterion %d, using deterministic suggestion: %v", id, err)
		return fallback, nil
	}

	parsed := llm.ParseJSONResponse(response)
	if parsed == nil {
		log.Printf("Unusable AI response for criterion %d, using deterministic suggestion", id)
		return fallback, nil
	}

	value := strings.TrimSpace(llm.GetString(parsed, "value", ""))
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

func (o *Optimizer) buildPrompt(crit seo.Criterion, snap *article.Snapshot) string {
	field := ""
	if len(crit.InputKeys) > 0 {
		field = snap.FieldString(crit.InputKeys[0])
	}

	excerpt := snap.Content
	if len(excerpt) > 1500 {
		excerpt = excerpt[:1500] + "..."
	}

	return fmt.Sprintf(improvePrompt,
		snap.Step1.PrimaryKeyword,
		crit.Description,
		field,
		snap.Step1.Title,
		snap.Step1.MetaDescription,
		excerpt,
	)
}
