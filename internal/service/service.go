package service

import (
	"github.com/healthdash/backend/internal/domain"
)

// RawSource is re-exported from domain for convenience
type RawSource = domain.RawSource
