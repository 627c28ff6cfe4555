package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chessnok/itmohack4days/backend/config"
	"github.com/chessnok/itmohack4days/backend/pipeline"
)

const findPartyPath = "/suggestions/api/4_1/rs/findById/party"

// ErrPartyNotFound is returned when the registry has no suggestion for the
// queried INN.
var ErrPartyNotFound = errors.New("party not found in registry")

// DadataService queries the DaData suggestions API for legal-entity data.
// It implements pipeline.RegistryClient.
type DadataService struct {
	config     *config.DadataConfig
	httpClient *http.Client
}

// DadataQuery represents the findById request body
type DadataQuery struct {
	Query string `json:"query"`
}

// DadataSuggestionsResponse represents the findById response envelope
type DadataSuggestionsResponse struct {
	Suggestions []struct {
		Value string      `json:"value"`
		Data  DadataParty `json:"data"`
	} `json:"suggestions"`
}

// DadataParty is the registry's legal-entity record
type DadataParty struct {
	INN   string `json:"inn"`
	KPP   string `json:"kpp"`
	OGRN  string `json:"ogrn"`
	OKVED string `json:"okved"`
	Name  struct {
		FullWithOPF  string `json:"full_with_opf"`
		ShortWithOPF string `json:"short_with_opf"`
	} `json:"name"`
	State struct {
		Status string `json:"status"`
		// Unix milliseconds
		RegistrationDate int64 `json:"registration_date"`
	} `json:"state"`
	Address struct {
		Value string `json:"value"`
	} `json:"address"`
}

func NewDadataService(cfg *config.DadataConfig) *DadataService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DadataService{
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FindByINN resolves an INN to the registry's canonical party record. The
// first suggestion wins; an empty suggestion list is ErrPartyNotFound.
func (s *DadataService) FindByINN(ctx context.Context, inn string) (*pipeline.RegistryParty, error) {
	jsonData, err := json.Marshal(DadataQuery{Query: inn})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.APIURL+findPartyPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Token "+s.config.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dadata API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result DadataSuggestionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w, body: %s", err, string(body))
	}

	if len(result.Suggestions) == 0 {
		return nil, ErrPartyNotFound
	}

	data := result.Suggestions[0].Data
	party := &pipeline.RegistryParty{
		INN:       data.INN,
		FullName:  data.Name.FullWithOPF,
		ShortName: data.Name.ShortWithOPF,
		Status:    data.State.Status,
		OKVED:     data.OKVED,
	}
	if data.State.RegistrationDate > 0 {
		party.RegistrationDate = time.UnixMilli(data.State.RegistrationDate)
	}

	return party, nil
}
