// Package history keeps the chronological record of raw input events
// and answers temporal pattern queries that span multiple frames:
// unordered combos, frame-windowed checks, time-windowed combos, and
// ordered sequences with bounded inter-event intervals.
//
// The log is owned by exactly one runtime and stepped once per frame.
// All queries are non-mutating and total: the absence of a match yields
// false or empty, never an error. Retention bounds keep per-frame query
// cost proportional to a small fixed window rather than session length.
package history
