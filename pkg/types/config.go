package types

import (
	"errors"
	"time"
)

// Limits of the real Contacts API, used as defaults.
const (
	DefaultPageSize  = 100
	DefaultBatchSize = 1000
)

// Config holds the simulation parameters shared by every simulator.
type Config struct {
	PageSize  int `json:"page_size" yaml:"page_size"`   // Contacts per retrieval page.
	BatchSize int `json:"batch_size" yaml:"batch_size"` // Records per write call.

	// MostRecentUpdate anchors the synthetic timestamps of recency
	// retrieval: position i is stamped MostRecentUpdate - i ms.
	MostRecentUpdate time.Time `json:"most_recent_update" yaml:"most_recent_update"`
}

// Config validation errors.
var (
	ErrPageSizeInvalid    = errors.New("page size must be positive")
	ErrBatchSizeInvalid   = errors.New("batch size must be positive")
	ErrReferenceTimeUnset = errors.New("most recent update time must be set")
)

// NewConfig returns the default configuration anchored at now. The anchor is
// truncated to whole milliseconds so synthetic timestamps are exact.
func NewConfig(now time.Time) Config {
	return Config{
		PageSize:         DefaultPageSize,
		BatchSize:        DefaultBatchSize,
		MostRecentUpdate: now.Truncate(time.Millisecond),
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return ErrPageSizeInvalid
	}
	if c.BatchSize <= 0 {
		return ErrBatchSizeInvalid
	}
	if c.MostRecentUpdate.IsZero() {
		return ErrReferenceTimeUnset
	}
	return nil
}
