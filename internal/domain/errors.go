package domain

import "errors"

var ErrLimitOutOfRange = errors.New("limit out of range")

// ListLimit bounds how many records a list call may return.
const (
	DefaultListLimit = 100
	MinListLimit     = 1
	MaxListLimit     = 1000
)

// ValidateListLimit rejects bounds outside [MinListLimit, MaxListLimit]
// before any query is issued.
func ValidateListLimit(limit int) error {
	if limit < MinListLimit || limit > MaxListLimit {
		return ErrLimitOutOfRange
	}
	return nil
}
