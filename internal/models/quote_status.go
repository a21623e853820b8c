package models

import (
	"errors"
	"strings"
)

type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "Pending"
	QuoteStatusApproved  QuoteStatus = "Approved"
	QuoteStatusRejected  QuoteStatus = "Rejected"
	QuoteStatusCompleted QuoteStatus = "Completed"
)

// QuoteStatuses is the closed status vocabulary in display order.
var QuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusApproved,
	QuoteStatusRejected,
	QuoteStatusCompleted,
}

var ErrInvalidQuoteStatus = errors.New("invalid quote status")

func InitialQuoteStatus() QuoteStatus {
	return QuoteStatusPending
}

// ParseQuoteStatus matches s against the vocabulary ignoring case and
// surrounding spaces and returns the canonical spelling.
func ParseQuoteStatus(s string) (QuoteStatus, error) {
	s = strings.TrimSpace(s)
	for _, st := range QuoteStatuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrInvalidQuoteStatus
}

func (s QuoteStatus) Valid() bool {
	for _, st := range QuoteStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s QuoteStatus) String() string {
	return string(s)
}
