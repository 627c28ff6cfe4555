package model

import (
	"time"
)

// Finding severity levels
const (
	SeverityInfo  = "info"
	SeverityWarn  = "warn"
	SeverityError = "error"
)

// UploadedDocument represents a user-supplied document awaiting checks
type UploadedDocument struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content,omitempty"`
	Tenant     string    `json:"-"`
	ObjectName string    `json:"-"`
	FileURL    string    `json:"file_url,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ExtractedParty holds counterparty requisites parsed from one document.
// A field the extractor could not find stays empty.
type ExtractedParty struct {
	INN     string `json:"inn,omitempty"`
	KPP     string `json:"kpp,omitempty"`
	OGRN    string `json:"ogrn,omitempty"`
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// ExtractionResult pairs extracted requisites with their source document
type ExtractionResult struct {
	DocumentID string         `json:"document_id"`
	Party      ExtractedParty `json:"party"`
}

// EnrichedParty is an ExtractedParty augmented with registry-derived fields
type EnrichedParty struct {
	ExtractedParty
	ValidatedINN bool   `json:"validated_inn"`
	FullName     string `json:"full_name,omitempty"`
	Status       string `json:"status,omitempty"`
	Founded      string `json:"founded,omitempty"`
	OKVED        string `json:"okved,omitempty"`
}

// EnrichmentResult pairs an enriched party with its source document
type EnrichmentResult struct {
	DocumentID string        `json:"document_id"`
	Party      EnrichedParty `json:"party"`
}

// Finding is a single validation outcome. The ID is derived from the
// document id and rule name, so reruns over the same input reproduce it.
type Finding struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id,omitempty"`
}

// DocumentSummary is the rendered synopsis of one document
type DocumentSummary struct {
	DocumentID string `json:"document_id"`
	Text       string `json:"text"`
}

// DealSummary is the rendered verdict across all processed documents
type DealSummary struct {
	Text string `json:"text"`
}

// PipelineResult is the full output of one pipeline run
type PipelineResult struct {
	Extractions  []ExtractionResult `json:"extractions"`
	Enrichments  []EnrichmentResult `json:"enrichments"`
	Findings     []Finding          `json:"findings"`
	DocSummaries []DocumentSummary  `json:"doc_summaries"`
	DealSummary  DealSummary        `json:"deal_summary"`
	FinishedAt   time.Time          `json:"finished_at"`
}
