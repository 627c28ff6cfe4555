package service

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/chessnok/itmohack4days/backend/config"
	"github.com/chessnok/itmohack4days/backend/model"
)

// DocumentStore is an in-memory store for uploaded documents and the last
// pipeline result per tenant. Pipeline runs rebuild their output from
// scratch, so nothing but the uploads and the latest result needs to live
// here. In production this should be replaced with a database.
type DocumentStore struct {
	mu           sync.RWMutex
	documents    map[string]*model.UploadedDocument
	results      map[string]*model.PipelineResult
	maxDocuments int // 0 = unlimited
}

var (
	globalStore *DocumentStore
	storeOnce   sync.Once
)

// InitDocumentStore initializes the global document store with configuration
func InitDocumentStore(cfg *config.StoreConfig) {
	storeOnce.Do(func() {
		maxDocuments := cfg.MaxDocuments
		if maxDocuments < 0 {
			maxDocuments = 0
		}
		globalStore = &DocumentStore{
			documents:    make(map[string]*model.UploadedDocument),
			results:      make(map[string]*model.PipelineResult),
			maxDocuments: maxDocuments,
		}
		slog.Info("document store initialized", "max_documents", maxDocuments)
	})
}

// GetDocumentStore returns the global document store
func GetDocumentStore() *DocumentStore {
	if globalStore == nil {
		// Fallback initialization with default settings
		globalStore = &DocumentStore{
			documents:    make(map[string]*model.UploadedDocument),
			results:      make(map[string]*model.PipelineResult),
			maxDocuments: 200,
		}
	}
	return globalStore
}

func (s *DocumentStore) Save(doc *model.UploadedDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[doc.ID] = doc
	s.cleanupIfNeeded()
}

func (s *DocumentStore) Get(id string) *model.UploadedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.documents[id]
}

// GetByTenant returns a tenant's documents in upload order. The pipeline
// relies on this ordering: result collections are matched positionally.
func (s *DocumentStore) GetByTenant(tenant string) []model.UploadedDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.UploadedDocument
	for _, d := range s.documents {
		if d.Tenant == tenant {
			result = append(result, *d)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].UploadedAt.Equal(result[j].UploadedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].UploadedAt.Before(result[j].UploadedAt)
	})
	return result
}

func (s *DocumentStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
}

// Count returns the number of documents in the store
func (s *DocumentStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// SaveResult stores the latest pipeline result for a tenant, replacing any
// previous one
func (s *DocumentStore) SaveResult(tenant string, result *model.PipelineResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[tenant] = result
}

// Result returns the latest pipeline result for a tenant, or nil
func (s *DocumentStore) Result(tenant string) *model.PipelineResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[tenant]
}

// cleanupIfNeeded removes oldest documents once the store exceeds
// maxDocuments. Must be called with lock held.
func (s *DocumentStore) cleanupIfNeeded() {
	if s.maxDocuments <= 0 {
		return
	}
	if len(s.documents) <= s.maxDocuments {
		return
	}

	docs := make([]*model.UploadedDocument, 0, len(s.documents))
	for _, d := range s.documents {
		docs = append(docs, d)
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.Before(docs[j].UploadedAt)
	})

	removeCount := len(docs) - s.maxDocuments
	for i := 0; i < removeCount; i++ {
		slog.Info("auto-cleaning old document",
			"document_id", docs[i].ID,
			"uploaded_at", docs[i].UploadedAt,
		)
		delete(s.documents, docs[i].ID)
	}
}
