package service

import (
	"github.com/smartcity/weather-lookup/internal/domain"
)

// LookupRepository is re-exported from domain for convenience
type LookupRepository = domain.LookupRepository
