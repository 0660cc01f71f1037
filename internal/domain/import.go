package domain

import "errors"

// ErrInvalidRow indicates a batch row that could not be parsed.
var ErrInvalidRow = errors.New("invalid row")

// ImportRow is one raw (id, name, balance) row from a batch source.
type ImportRow struct {
	ID      string
	Name    string
	Balance string
}

// RowError records why a single row was rejected. Row is 1-based and
// counts every input row, including the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportResult aggregates the outcome of a bulk import.
//
// The batch is best effort: bad rows land in Errors and duplicates in
// Skipped, neither aborts the remaining rows.
type ImportResult struct {
	Imported int        `json:"imported"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors,omitempty"`
}
