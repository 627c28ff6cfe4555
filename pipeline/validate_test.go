package pipeline

import (
	"sort"
	"testing"

	"github.com/chessnok/itmohack4days/backend/model"
)

func enrichedDoc(id string, party model.EnrichedParty) model.EnrichmentResult {
	return model.EnrichmentResult{DocumentID: id, Party: party}
}

func findingIDs(findings []model.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.ID
	}
	sort.Strings(ids)
	return ids
}

func TestValidateMissingINN(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			Status: "ACTIVE",
			OKVED:  "62.01",
		}),
	})

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.ID != "f-d1-inn-missing" {
		t.Errorf("Expected id f-d1-inn-missing, got %s", f.ID)
	}
	if f.Severity != model.SeverityError {
		t.Errorf("Expected error severity, got %s", f.Severity)
	}
	if f.DocumentID != "d1" {
		t.Errorf("Expected document id d1, got %s", f.DocumentID)
	}
}

func TestValidateMissingINNNeverFiresLengthRule(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{Status: "ACTIVE", OKVED: "62.01"}),
	})

	for _, f := range findings {
		if f.ID == "f-d1-inn-len" {
			t.Error("Length rule must not fire when the inn is absent")
		}
	}
}

func TestValidateINNLength(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "12345"},
			Status:         "ACTIVE",
			OKVED:          "62.01",
		}),
	})

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].ID != "f-d1-inn-len" {
		t.Errorf("Expected id f-d1-inn-len, got %s", findings[0].ID)
	}
	if findings[0].Severity != model.SeverityError {
		t.Errorf("Expected error severity, got %s", findings[0].Severity)
	}
}

func TestValidateInactiveStatus(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "1234567890"},
			Status:         "LIQUIDATED",
			OKVED:          "62.01",
		}),
	})

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.ID != "f-d1-status" {
		t.Errorf("Expected id f-d1-status, got %s", f.ID)
	}
	if f.Severity != model.SeverityWarn {
		t.Errorf("Expected warn severity, got %s", f.Severity)
	}
	if f.Message != "Статус контрагента: LIQUIDATED" {
		t.Errorf("Expected message to include the status, got %q", f.Message)
	}
}

func TestValidateMissingOKVED(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "1234567890"},
			Status:         "ACTIVE",
		}),
	})

	if len(findings) != 1 {
		t.Fatalf("Expected 1 finding, got %d", len(findings))
	}
	if findings[0].ID != "f-d1-okved" {
		t.Errorf("Expected id f-d1-okved, got %s", findings[0].ID)
	}
	if findings[0].Severity != model.SeverityInfo {
		t.Errorf("Expected info severity, got %s", findings[0].Severity)
	}
}

func TestValidateMultipleRulesFire(t *testing.T) {
	// Short inn, dead status, no okved: three independent findings
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "123"},
			Status:         "BANKRUPT",
		}),
	})

	want := []string{"f-d1-inn-len", "f-d1-okved", "f-d1-status"}
	got := findingIDs(findings)
	if len(got) != len(want) {
		t.Fatalf("Expected %d findings, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected finding %s, got %s", want[i], got[i])
		}
	}
}

func TestValidateCleanDocument(t *testing.T) {
	findings := Validate([]model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "1234567890"},
			Status:         "ACTIVE",
			OKVED:          "62.01",
		}),
	})

	if len(findings) != 0 {
		t.Errorf("Expected no findings for a clean document, got %v", findingIDs(findings))
	}
}

func TestValidateIdempotent(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{Status: "ACTIVE"}),
		enrichedDoc("d2", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "123456789"},
			Status:         "LIQUIDATED",
			OKVED:          "62.01",
		}),
	}

	first := findingIDs(Validate(enriched))
	second := findingIDs(Validate(enriched))

	if len(first) != len(second) {
		t.Fatalf("Expected identical finding sets, got %v and %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Expected identical finding sets, got %v and %v", first, second)
		}
	}
}

func TestValidateFindingIDsUnique(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{}),
		enrichedDoc("d2", model.EnrichedParty{}),
		enrichedDoc("d3", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "12"},
			Status:         "SUSPENDED",
		}),
	}

	findings := Validate(enriched)
	seen := make(map[string]bool)
	for _, f := range findings {
		if seen[f.ID] {
			t.Errorf("Duplicate finding id %s", f.ID)
		}
		seen[f.ID] = true
	}
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{Status: "LIQUIDATED"}),
	}
	before := enriched[0]

	Validate(enriched)

	if enriched[0] != before {
		t.Error("Validate must not mutate its input")
	}
}
