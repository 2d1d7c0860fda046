package service

import "errors"

var (
	ErrNotFound     = errors.New("not_found")
	ErrFundNotFound = errors.New("fund not found")
	// ErrFundLocked means another settlement attempt claimed the fund first.
	// The loser fails fast; it never proceeds.
	ErrFundLocked = errors.New("fund is already being settled")
	// ErrNoPendingFund is returned when settlement is asked for "the oldest
	// due fund" and there is none.
	ErrNoPendingFund = errors.New("no pending fund due for settlement")
)
