package analytics

import (
	"fmt"
	"time"
)

// InvalidRangeError is returned when a custom date range has its start after
// its end. It fires before any repository fetch is issued.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

// Error implements the error interface
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s is after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// AggregationError wraps a repository failure surfaced to the caller. The
// engine does not retry; the caller re-invokes the top-level call.
type AggregationError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *AggregationError) Error() string {
	return fmt.Sprintf("analytics: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying repository error
func (e *AggregationError) Unwrap() error {
	return e.Err
}

func aggErr(op string, err error) *AggregationError {
	return &AggregationError{Op: op, Err: err}
}
