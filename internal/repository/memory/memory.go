package memory

import (
	"context"

	"github.com/healthdash/backend/internal/domain"
)

// Source implements domain.RawSource over rows held in memory.
// Used by tests and by callers that build the tables themselves.
type Source struct {
	name         string
	records      []domain.RawRow
	demographics []domain.RawRow
}

// NewSource creates a new in-memory source
func NewSource(name string, records, demographics []domain.RawRow) *Source {
	return &Source{name: name, records: records, demographics: demographics}
}

// Name returns the label given at construction
func (s *Source) Name() string {
	return s.name
}

// LoadRecords returns a copy of the record rows
func (s *Source) LoadRecords(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.RawRow(nil), s.records...), nil
}

// LoadDemographics returns a copy of the demographic rows
func (s *Source) LoadDemographics(ctx context.Context) ([]domain.RawRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]domain.RawRow(nil), s.demographics...), nil
}
