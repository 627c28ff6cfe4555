package pipeline

import (
	"fmt"

	"github.com/chessnok/itmohack4days/backend/model"
)

// Validate checks enriched parties against the due-diligence rule set and
// returns typed findings. Rules are independent: every applicable rule fires
// for every document. Finding ids are derived from the document id and rule
// name alone, so repeated runs over the same input yield the same id set.
func Validate(enriched []model.EnrichmentResult) []model.Finding {
	var findings []model.Finding
	for _, item := range enriched {
		party := item.Party

		if party.INN == "" {
			findings = append(findings, model.Finding{
				ID:         findingID(item.DocumentID, "inn-missing"),
				Severity:   model.SeverityError,
				Message:    "Не найден ИНН контрагента",
				DocumentID: item.DocumentID,
			})
		}
		if party.INN != "" && len(party.INN) != 10 {
			findings = append(findings, model.Finding{
				ID:         findingID(item.DocumentID, "inn-len"),
				Severity:   model.SeverityError,
				Message:    "ИНН должен состоять из 10 цифр",
				DocumentID: item.DocumentID,
			})
		}
		if party.Status != "" && party.Status != "ACTIVE" {
			findings = append(findings, model.Finding{
				ID:         findingID(item.DocumentID, "status"),
				Severity:   model.SeverityWarn,
				Message:    fmt.Sprintf("Статус контрагента: %s", party.Status),
				DocumentID: item.DocumentID,
			})
		}
		if party.OKVED == "" {
			findings = append(findings, model.Finding{
				ID:         findingID(item.DocumentID, "okved"),
				Severity:   model.SeverityInfo,
				Message:    "OKVED не определён — проверьте соответствие виду деятельности",
				DocumentID: item.DocumentID,
			})
		}
	}
	return findings
}

func findingID(documentID, rule string) string {
	return fmt.Sprintf("f-%s-%s", documentID, rule)
}
