package pipeline

import (
	"strings"
	"testing"

	"github.com/chessnok/itmohack4days/backend/model"
)

func TestSummarizeDocumentsNoIssues(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{
			ExtractedParty: model.ExtractedParty{INN: "1234567890"},
			FullName:       "ООО \"Альфа\"",
		}),
	}

	summaries := SummarizeDocuments(enriched, nil)

	if len(summaries) != 1 {
		t.Fatalf("Expected 1 summary, got %d", len(summaries))
	}
	want := "ООО \"Альфа\" — ИНН 1234567890; Замечаний нет"
	if summaries[0].Text != want {
		t.Errorf("Expected %q, got %q", want, summaries[0].Text)
	}
	if summaries[0].DocumentID != "d1" {
		t.Errorf("Expected document id d1, got %s", summaries[0].DocumentID)
	}
}

func TestSummarizeDocumentsWithFindings(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{}),
	}
	findings := []model.Finding{
		{ID: "f-d1-inn-missing", Severity: model.SeverityError, Message: "Не найден ИНН контрагента", DocumentID: "d1"},
		{ID: "f-d1-okved", Severity: model.SeverityInfo, Message: "OKVED не определён — проверьте соответствие виду деятельности", DocumentID: "d1"},
	}

	summaries := SummarizeDocuments(enriched, findings)

	text := summaries[0].Text
	if !strings.HasPrefix(text, "Неизвестный контрагент — ИНН —; ") {
		t.Errorf("Expected placeholder name and dash for inn, got %q", text)
	}
	if !strings.Contains(text, "❌ Не найден ИНН контрагента") {
		t.Errorf("Expected error glyph with message, got %q", text)
	}
	if !strings.Contains(text, "; ℹ️ OKVED") {
		t.Errorf("Expected semicolon-joined info finding, got %q", text)
	}
}

func TestSummarizeDocumentsNameFallback(t *testing.T) {
	tests := []struct {
		name  string
		party model.EnrichedParty
		want  string
	}{
		{
			name: "full name wins",
			party: model.EnrichedParty{
				ExtractedParty: model.ExtractedParty{Name: "Альфа"},
				FullName:       "ООО \"Альфа\"",
			},
			want: "ООО \"Альфа\"",
		},
		{
			name: "extracted name when no full name",
			party: model.EnrichedParty{
				ExtractedParty: model.ExtractedParty{Name: "Альфа"},
			},
			want: "Альфа",
		},
		{
			name:  "placeholder when nothing known",
			party: model.EnrichedParty{},
			want:  "Неизвестный контрагент",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := SummarizeDocuments([]model.EnrichmentResult{enrichedDoc("d1", tt.party)}, nil)
			if !strings.HasPrefix(summaries[0].Text, tt.want+" — ") {
				t.Errorf("Expected summary to start with %q, got %q", tt.want, summaries[0].Text)
			}
		})
	}
}

func TestSummarizeDocumentsIgnoresOtherDocsFindings(t *testing.T) {
	enriched := []model.EnrichmentResult{
		enrichedDoc("d1", model.EnrichedParty{FullName: "Альфа"}),
	}
	findings := []model.Finding{
		{ID: "f-d2-inn-missing", Severity: model.SeverityError, Message: "Не найден ИНН контрагента", DocumentID: "d2"},
	}

	summaries := SummarizeDocuments(enriched, findings)

	if !strings.HasSuffix(summaries[0].Text, "Замечаний нет") {
		t.Errorf("Expected no issues for d1, got %q", summaries[0].Text)
	}
}

func TestSummarizeDeal(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		findings []model.Finding
		want     string
	}{
		{
			name:  "clean run",
			total: 1,
			want:  "Обработано документов: 1. Ошибки: 0, предупреждения: 0.",
		},
		{
			name:  "counts by severity",
			total: 3,
			findings: []model.Finding{
				{Severity: model.SeverityError},
				{Severity: model.SeverityError},
				{Severity: model.SeverityWarn},
				{Severity: model.SeverityInfo},
			},
			want: "Обработано документов: 3. Ошибки: 2, предупреждения: 1.",
		},
		{
			name:  "info findings are not counted",
			total: 2,
			findings: []model.Finding{
				{Severity: model.SeverityInfo},
				{Severity: model.SeverityInfo},
			},
			want: "Обработано документов: 2. Ошибки: 0, предупреждения: 0.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeDeal(tt.total, tt.findings)
			if summary.Text != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, summary.Text)
			}
		})
	}
}
