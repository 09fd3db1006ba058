package handlers

import (
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// parsePeriod turns optional YYYY-MM-DD bounds into a filter. Missing bounds stay open.
func parsePeriod(from, to string) (domain.JournalFilter, error) {
	var filter domain.JournalFilter
	var err error
	if filter.From, err = domain.ParseDate(from, time.Time{}); err != nil {
		return filter, err
	}
	if filter.To, err = domain.ParseDate(to, time.Time{}); err != nil {
		return filter, err
	}
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.From.After(filter.To) {
		return filter, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrValidation, from, to)
	}
	return filter, nil
}

// parseAsOf defaults to today.
func parseAsOf(asOf string) (time.Time, error) {
	return domain.ParseDate(asOf, time.Now().UTC())
}
