package service

import "sync"

// FundLocks serializes settlement and audit corrections per fund within this
// process. Cross-process exclusion comes from the compare-and-swap on
// funds.distributed; this keeps in-process callers from even reaching it
// concurrently.
type FundLocks struct {
	mu    sync.Mutex
	locks map[uint64]*sync.Mutex
}

func NewFundLocks() *FundLocks {
	return &FundLocks{locks: make(map[uint64]*sync.Mutex)}
}

// Acquire blocks until the fund's lock is held and returns the release func.
func (l *FundLocks) Acquire(fundID uint64) func() {
	l.mu.Lock()
	m, ok := l.locks[fundID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[fundID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
