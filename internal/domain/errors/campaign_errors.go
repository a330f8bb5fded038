package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrCampaignNotEditable indicates that a completed or cancelled campaign was modified
	ErrCampaignNotEditable = errors.New("campaign can no longer be edited")

	// ErrMediaStorageDisabled is returned when no object storage is configured
	ErrMediaStorageDisabled = errors.New("media storage is not configured")
)

// InvalidCampaignTransitionError is returned for a lifecycle change the campaign cannot make
type InvalidCampaignTransitionError struct {
	From string
	To   string
}

func (e *InvalidCampaignTransitionError) Error() string {
	return fmt.Sprintf("cannot move campaign from %s to %s", e.From, e.To)
}

// NewInvalidCampaignTransitionError creates a new InvalidCampaignTransitionError
func NewInvalidCampaignTransitionError(from, to string) *InvalidCampaignTransitionError {
	return &InvalidCampaignTransitionError{From: from, To: to}
}
