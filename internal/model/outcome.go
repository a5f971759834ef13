package model

import (
	"errors"
	"path/filepath"
)

// WorkItem is one input image path taken from the work list. The same list is
// reloaded every batch, so the same item can be processed many times per run.
type WorkItem string

func (w WorkItem) Path() string { return string(w) }

func (w WorkItem) Base() string { return filepath.Base(string(w)) }

// Failure kinds. Closed set so callers and tests can match on the cause
// instead of on message text.
const (
	FailureInputUnreadable   = "input_unreadable"
	FailureTransport         = "transport_error"
	FailureMalformedResponse = "malformed_response"
	FailureSink              = "sink_error"
)

// Outcome is the result of one processing attempt for one work item.
// Err == nil means success and both artifact paths are set.
type Outcome struct {
	Item         WorkItem
	ResponsePath string
	TextPath     string
	Kind         string
	Err          error
}

func (o Outcome) Success() bool { return o.Err == nil }

// ItemError tags an error with a failure kind while keeping the cause
// available through Unwrap.
type ItemError struct {
	Kind string
	Err  error
}

func (e *ItemError) Error() string { return e.Kind + ": " + e.Err.Error() }

func (e *ItemError) Unwrap() error { return e.Err }

// KindOf extracts the failure kind from an error chain. Errors that were never
// classified count as transport errors: the external call is the only place an
// unknown error can come from.
func KindOf(err error) string {
	var ie *ItemError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return FailureTransport
}
