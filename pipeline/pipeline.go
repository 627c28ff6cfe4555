package pipeline

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chessnok/itmohack4days/backend/model"
	"github.com/chessnok/itmohack4days/backend/pkg/logger"
)

// ErrRunInProgress is returned when a run is requested while a previous run
// has not finished yet.
var ErrRunInProgress = errors.New("pipeline run already in progress")

// Runner chains the four stages (extract, enrich, validate, summarize) over
// an upload batch. Each stage consumes the previous stage's full output and
// allocates a fresh collection, so no locking is needed between stages.
// At most one run may be in flight per tenant; overlapping calls for the
// same tenant are rejected instead of racing on the stored result, while
// other tenants run undisturbed.
type Runner struct {
	enricher *Enricher
	mu       sync.Mutex
	running  map[string]bool
}

func NewRunner(enricher *Enricher) *Runner {
	return &Runner{
		enricher: enricher,
		running:  make(map[string]bool),
	}
}

// Run executes one full pipeline pass for a tenant. It always produces a
// result for the given documents: enrichment failures degrade individual
// records, they do not abort the run.
func (r *Runner) Run(ctx context.Context, tenant string, docs []model.UploadedDocument) (*model.PipelineResult, error) {
	if !r.acquire(tenant) {
		return nil, ErrRunInProgress
	}
	defer r.release(tenant)

	started := time.Now()

	extractions := Extract(docs)
	enrichments := r.enricher.Enrich(ctx, extractions)
	findings := Validate(enrichments)
	docSummaries := SummarizeDocuments(enrichments, findings)
	dealSummary := SummarizeDeal(len(extractions), findings)

	logger.Info(ctx, "pipeline run finished",
		"tenant", tenant,
		"documents", len(docs),
		"findings", len(findings),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return &model.PipelineResult{
		Extractions:  extractions,
		Enrichments:  enrichments,
		Findings:     findings,
		DocSummaries: docSummaries,
		DealSummary:  dealSummary,
		FinishedAt:   time.Now(),
	}, nil
}

func (r *Runner) acquire(tenant string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running[tenant] {
		return false
	}
	r.running[tenant] = true
	return true
}

func (r *Runner) release(tenant string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, tenant)
}
