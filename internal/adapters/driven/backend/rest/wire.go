package rest

import "github.com/knaw-huc/entity-annotator/internal/core/domain"

type statisticsResponse struct {
	Done int `json:"done"`
	Todo int `json:"todo"`
}

type termsResponse struct {
	Frequencies []domain.TermFrequency `json:"frequencies"`
	Total       int                    `json:"total"`
}

// occurrencesResponse keeps the backend's spelling of "occurences".
type occurrencesResponse struct {
	Occurrences []domain.Occurrence `json:"occurences"`
	Total       int                 `json:"total"`
}
