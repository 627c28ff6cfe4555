package pipeline

import (
	"fmt"
	"strings"

	"github.com/chessnok/itmohack4days/backend/model"
)

// SummarizeDocuments renders one human-readable line per document: the
// resolved counterparty name, the INN (or a dash) and the document's
// findings joined by semicolons.
func SummarizeDocuments(enriched []model.EnrichmentResult, findings []model.Finding) []model.DocumentSummary {
	summaries := make([]model.DocumentSummary, len(enriched))
	for i, item := range enriched {
		var problems []string
		for _, f := range findings {
			if f.DocumentID == item.DocumentID {
				problems = append(problems, severityGlyph(f.Severity)+" "+f.Message)
			}
		}
		problemText := "Замечаний нет"
		if len(problems) > 0 {
			problemText = strings.Join(problems, "; ")
		}

		name := item.Party.FullName
		if name == "" {
			name = item.Party.Name
		}
		if name == "" {
			name = "Неизвестный контрагент"
		}
		inn := item.Party.INN
		if inn == "" {
			inn = "—"
		}

		summaries[i] = model.DocumentSummary{
			DocumentID: item.DocumentID,
			Text:       fmt.Sprintf("%s — ИНН %s; %s", name, inn, problemText),
		}
	}
	return summaries
}

// SummarizeDeal folds the processed-document count and finding counts into
// the one-line deal verdict.
func SummarizeDeal(total int, findings []model.Finding) model.DealSummary {
	var errors, warns int
	for _, f := range findings {
		switch f.Severity {
		case model.SeverityError:
			errors++
		case model.SeverityWarn:
			warns++
		}
	}
	return model.DealSummary{
		Text: fmt.Sprintf("Обработано документов: %d. Ошибки: %d, предупреждения: %d.", total, errors, warns),
	}
}

func severityGlyph(severity string) string {
	switch severity {
	case model.SeverityError:
		return "❌"
	case model.SeverityWarn:
		return "⚠️"
	default:
		return "ℹ️"
	}
}
