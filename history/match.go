package history

import (
	"time"
)

// MatchCombo reports whether the most recently recorded state of every
// key in combo is active, with no ordering or time bound. A key pressed
// long ago and never released still satisfies the combo: the check uses
// the pruning-proof latest-state table. An empty combo reports false.
func (l *Log[C, S]) MatchCombo(combo []C) bool {
	if len(combo) == 0 {
		return false
	}
	for _, c := range combo {
		if !l.latestActive(c) {
			return false
		}
	}
	return true
}

// MatchComboInFrames reports whether the latest state of every combo key
// within the last prevFrames frame windows is active. An empty combo
// reports false.
func (l *Log[C, S]) MatchComboInFrames(combo []C, prevFrames int) bool {
	if len(combo) == 0 {
		return false
	}
	start := l.windowStart(prevFrames)
	for _, c := range combo {
		found := false
		for i := len(l.entries) - 1; i >= start; i-- {
			if l.entries[i].Code != c {
				continue
			}
			found = l.active(l.entries[i].State)
			break
		}
		if !found {
			return false
		}
	}
	return true
}

// MatchKeyInFrames reports whether an entry (code, state) exists within
// the last prevFrames frame windows.
func (l *Log[C, S]) MatchKeyInFrames(code C, state S, prevFrames int) bool {
	start := l.windowStart(prevFrames)
	for i := len(l.entries) - 1; i >= start; i-- {
		if l.entries[i].Code == code && l.entries[i].State == state {
			return true
		}
	}
	return false
}

// MatchComboInTimeWindow reports whether the most recent active
// occurrence of every combo key falls within a single span of length
// window ending at now. The combined span of all occurrences, not each
// independently, must fit within the window. An empty combo reports
// false.
func (l *Log[C, S]) MatchComboInTimeWindow(combo []C, window time.Duration) bool {
	if len(combo) == 0 {
		return false
	}
	now := l.clock()
	for _, c := range combo {
		e, ok := l.latest[c]
		if !ok || !l.active(e.State) {
			return false
		}
		if now.Sub(e.Time) > window {
			return false
		}
	}
	return true
}

// MatchOrderedSequence reports whether the retained log contains a
// subsequence of active-state entries whose keys equal sequence in
// order, with every consecutive matched pair at most maxInterval apart.
// The search proceeds forward from the earliest candidate and returns
// on the first fully satisfying match: the earliest-starting match wins.
func (l *Log[C, S]) MatchOrderedSequence(sequence []C, maxInterval time.Duration) bool {
	if len(sequence) == 0 {
		return false
	}
	for start := 0; start <= len(l.entries)-len(sequence); start++ {
		if !l.activeEntryMatches(start, sequence[0]) {
			continue
		}
		if l.matchForwardFrom(start, sequence, 1, maxInterval) {
			return true
		}
	}
	return false
}

// matchForwardFrom extends a partial match whose latest element is
// entry prev, trying every occurrence of sequence[si] within
// maxInterval of it. When two occurrences tie a key, only one may lead
// to a full chain, so each candidate is tried before giving up on the
// anchor. Entry times are non-decreasing, which bounds the candidate
// scan at the first entry past the interval.
func (l *Log[C, S]) matchForwardFrom(prev int, sequence []C, si int, maxInterval time.Duration) bool {
	if si == len(sequence) {
		return true
	}
	for i := prev + 1; i < len(l.entries); i++ {
		if l.entries[i].Time.Sub(l.entries[prev].Time) > maxInterval {
			return false
		}
		if !l.activeEntryMatches(i, sequence[si]) {
			continue
		}
		if l.matchForwardFrom(i, sequence, si+1, maxInterval) {
			return true
		}
	}
	return false
}

// MatchRecentOrderedSequence applies the same interval rule as
// MatchOrderedSequence but searches backward from the most recent entry,
// returning the latest-ending valid occurrence: recency wins over
// earliest start.
func (l *Log[C, S]) MatchRecentOrderedSequence(sequence []C, maxInterval time.Duration) bool {
	if len(sequence) == 0 {
		return false
	}
	last := len(sequence) - 1
	for end := len(l.entries) - 1; end >= last; end-- {
		if !l.activeEntryMatches(end, sequence[last]) {
			continue
		}
		if l.matchBackwardFrom(end, sequence, len(sequence)-2, maxInterval) {
			return true
		}
	}
	return false
}

// matchBackwardFrom extends a partial match whose earliest element is
// entry next, trying every occurrence of sequence[si] within
// maxInterval before it. Mirrors matchForwardFrom, walking the chain
// toward the start of the sequence.
func (l *Log[C, S]) matchBackwardFrom(next int, sequence []C, si int, maxInterval time.Duration) bool {
	if si < 0 {
		return true
	}
	for i := next - 1; i >= 0; i-- {
		if l.entries[next].Time.Sub(l.entries[i].Time) > maxInterval {
			return false
		}
		if !l.activeEntryMatches(i, sequence[si]) {
			continue
		}
		if l.matchBackwardFrom(i, sequence, si-1, maxInterval) {
			return true
		}
	}
	return false
}

// activeEntryMatches reports whether entry i is an active-state
// occurrence of the given key.
func (l *Log[C, S]) activeEntryMatches(i int, code C) bool {
	e := l.entries[i]
	return e.Code == code && l.active(e.State)
}
