package service

import (
	"encoding/json"
	"log"

	"acadly.app/portal/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

const academicEventIndex = "academic_events"

// EventSearchService keeps the academic-event search index in sync and
// answers title searches. All methods degrade gracefully: indexing
// failures are logged and SearchEventIDs reports unavailability so
// callers can fall back to the database.
type EventSearchService interface {
	IndexEvent(event *entity.AcademicEvent)
	RemoveEvent(id uuid.UUID)
	// SearchEventIDs returns matching event ids. ok is false when the
	// search backend is not configured or the query failed.
	SearchEventIDs(query string) (ids []uuid.UUID, ok bool)
}

type eventSearchService struct {
	client meilisearch.ServiceManager
}

func NewEventSearchService(client meilisearch.ServiceManager) EventSearchService {
	s := &eventSearchService{client: client}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *eventSearchService) initIndex() {
	sortable := []string{"start_date"}
	if _, err := s.client.Index(academicEventIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update academic_events sortable attributes: %v", err)
	}
}

type meiliEventDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartDate   int64  `json:"start_date"`
}

func (s *eventSearchService) IndexEvent(event *entity.AcademicEvent) {
	if s.client == nil {
		return
	}

	doc := meiliEventDoc{
		ID:        event.ID.String(),
		Title:     event.Title,
		Category:  event.Category,
		StartDate: event.StartDate.Unix(),
	}
	if event.Description != nil {
		doc.Description = *event.Description
	}

	if _, err := s.client.Index(academicEventIndex).AddDocuments([]meiliEventDoc{doc}, strPtr("id")); err != nil {
		log.Printf("Failed to index academic event %s: %v", event.ID, err)
	}
}

func (s *eventSearchService) RemoveEvent(id uuid.UUID) {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(academicEventIndex).DeleteDocument(id.String()); err != nil {
		log.Printf("Failed to remove academic event %s from index: %v", id, err)
	}
}

func (s *eventSearchService) SearchEventIDs(query string) ([]uuid.UUID, bool) {
	if s.client == nil {
		return nil, false
	}

	raw, err := s.client.Index(academicEventIndex).SearchRaw(query, &meilisearch.SearchRequest{Limit: 100})
	if err != nil {
		log.Printf("Academic event search failed: %v", err)
		return nil, false
	}

	var parsed struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &parsed); err != nil {
		log.Printf("Failed to decode academic event search response: %v", err)
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits))
	for _, hit := range parsed.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, true
}

func strPtr(s string) *string {
	return &s
}
