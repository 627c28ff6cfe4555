package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFindingJSONOmitsEmptyDocumentID(t *testing.T) {
	finding := Finding{
		ID:       "f-global-check",
		Severity: SeverityInfo,
		Message:  "note",
	}

	data, err := json.Marshal(finding)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if strings.Contains(string(data), "document_id") {
		t.Errorf("Expected document_id to be omitted, got %s", data)
	}
}

func TestExtractedPartyJSONOmitsAbsentFields(t *testing.T) {
	party := ExtractedParty{INN: "1234567890"}

	data, err := json.Marshal(party)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	for _, absent := range []string{"kpp", "ogrn", "name", "address"} {
		if strings.Contains(string(data), absent) {
			t.Errorf("Expected %s to be omitted, got %s", absent, data)
		}
	}
}

func TestEnrichedPartyFlattensExtractedFields(t *testing.T) {
	party := EnrichedParty{
		ExtractedParty: ExtractedParty{INN: "1234567890"},
		ValidatedINN:   true,
		FullName:       "ООО \"Альфа\"",
	}

	data, err := json.Marshal(party)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if flat["inn"] != "1234567890" {
		t.Errorf("Expected embedded inn at top level, got %s", data)
	}
	if flat["validated_inn"] != true {
		t.Errorf("Expected validated_inn at top level, got %s", data)
	}
}
