package pipeline

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chessnok/itmohack4days/backend/model"
)

// Mock enrichment values used when no registry client is configured or a
// document has no INN to look up
const (
	unknownPartyName = "ООО «Неизвестно»"
	mockStatus       = "ACTIVE"
	mockFounded      = "2016-09-12"
	mockOKVED        = "62.01"
)

// RegistryParty is the subset of registry data the pipeline consumes
type RegistryParty struct {
	INN              string
	FullName         string
	ShortName        string
	Status           string
	RegistrationDate time.Time
	OKVED            string
}

// RegistryClient resolves an INN to canonical legal-entity data
type RegistryClient interface {
	FindByINN(ctx context.Context, inn string) (*RegistryParty, error)
}

// Enricher augments extracted parties with registry data. The lookup
// capability is fixed at construction: with a nil client every record gets
// the deterministic mock enrichment and no I/O happens.
type Enricher struct {
	registry RegistryClient
}

func NewEnricher(registry RegistryClient) *Enricher {
	return &Enricher{registry: registry}
}

// Enrich issues one registry lookup per record. Lookups are dispatched
// concurrently but each result lands in the slot of the record that produced
// it, so output order always matches input order. A failed lookup degrades
// that record to its extracted fields and never affects sibling records;
// the stage itself cannot fail.
func (e *Enricher) Enrich(ctx context.Context, items []model.ExtractionResult) []model.EnrichmentResult {
	results := make([]model.EnrichmentResult, len(items))

	g, ctx := errgroup.WithContext(ctx)
	for i, item := range items {
		if e.registry == nil || item.Party.INN == "" {
			results[i] = mockEnrichment(item)
			continue
		}
		i, item := i, item
		g.Go(func() error {
			results[i] = e.lookupOne(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (e *Enricher) lookupOne(ctx context.Context, item model.ExtractionResult) model.EnrichmentResult {
	registry, err := e.registry.FindByINN(ctx, item.Party.INN)
	if err != nil || registry == nil {
		// Silent degrade: keep the extracted fields as-is
		return model.EnrichmentResult{
			DocumentID: item.DocumentID,
			Party:      model.EnrichedParty{ExtractedParty: item.Party},
		}
	}

	party := model.EnrichedParty{
		ExtractedParty: item.Party,
		ValidatedINN:   registry.INN == item.Party.INN,
		FullName:       registry.FullName,
		Status:         strings.ToUpper(registry.Status),
		OKVED:          registry.OKVED,
	}
	if party.FullName == "" {
		party.FullName = registry.ShortName
	}
	if !registry.RegistrationDate.IsZero() {
		party.Founded = registry.RegistrationDate.UTC().Format("2006-01-02")
	}

	return model.EnrichmentResult{DocumentID: item.DocumentID, Party: party}
}

func mockEnrichment(item model.ExtractionResult) model.EnrichmentResult {
	party := model.EnrichedParty{
		ExtractedParty: item.Party,
		ValidatedINN:   len(item.Party.INN) == 10,
		FullName:       item.Party.Name,
		Status:         mockStatus,
		Founded:        mockFounded,
		OKVED:          mockOKVED,
	}
	if party.FullName == "" {
		party.FullName = unknownPartyName
	}
	return model.EnrichmentResult{DocumentID: item.DocumentID, Party: party}
}
