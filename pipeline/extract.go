package pipeline

import (
	"regexp"
	"strings"

	"github.com/chessnok/itmohack4days/backend/model"
)

var (
	// A standalone 10-digit run is treated as an INN. Shorter or longer
	// digit runs are not requisites and stay unmatched.
	innPattern = regexp.MustCompile(`\b(\d{10})\b`)
	// KPP marker with an optional separator before the 9-digit code
	kppPattern = regexp.MustCompile(`kpp[_\s-]?(\d{9})`)
	// Organizational-form marker followed by a run of letters/spaces/quotes
	namePattern = regexp.MustCompile(`(?i)(?:ooo|ооо|ип)\s+([a-zа-яё\s"']+)`)
)

// Extract scans each document for counterparty requisites. The document text
// is searched when present, otherwise the file name. The three patterns are
// independent; a miss leaves the field empty and is not an error. Output is
// 1:1 with input, in input order.
func Extract(docs []model.UploadedDocument) []model.ExtractionResult {
	results := make([]model.ExtractionResult, len(docs))
	for i, d := range docs {
		source := d.Content
		if source == "" {
			source = d.Name
		}
		lower := strings.ToLower(source)

		var party model.ExtractedParty
		if m := innPattern.FindStringSubmatch(lower); m != nil {
			party.INN = m[1]
		}
		if m := kppPattern.FindStringSubmatch(lower); m != nil {
			party.KPP = m[1]
		}
		// Name is captured from the unmodified text to keep its casing
		if m := namePattern.FindStringSubmatch(source); m != nil {
			party.Name = trimPartyName(m[1])
		}

		results[i] = model.ExtractionResult{
			DocumentID: d.ID,
			Party:      party,
		}
	}
	return results
}

// trimPartyName trims surrounding whitespace and drops requisite markers
// that the greedy letter run swallowed from the tail ("kpp" in
// "ooo Альфа kpp_123456789" is part of the next token, not the name).
func trimPartyName(raw string) string {
	name := strings.TrimSpace(raw)
	for {
		fields := strings.Fields(name)
		if len(fields) < 2 {
			return name
		}
		switch strings.ToLower(fields[len(fields)-1]) {
		case "kpp", "кпп", "инн", "огрн":
			name = strings.Join(fields[:len(fields)-1], " ")
		default:
			return name
		}
	}
}
