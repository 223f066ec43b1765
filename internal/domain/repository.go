package domain

import "context"

// RawSource supplies the untyped input tables to the pipeline.
// Implementations return rows in source order; ordering decides which
// duplicate wins, so it must be stable.
type RawSource interface {
	// Name identifies the source in logs
	Name() string

	// LoadRecords returns the state metric table
	LoadRecords(ctx context.Context) ([]RawRow, error)

	// LoadDemographics returns the demographic table
	LoadDemographics(ctx context.Context) ([]RawRow, error)
}
