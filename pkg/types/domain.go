package types

import "strings"

// ProcessingState is the lifecycle of an uploaded model on the service side.
type ProcessingState string

const (
	ProcessingPending    ProcessingState = "PENDING"
	ProcessingProcessing ProcessingState = "PROCESSING"
	ProcessingSucceeded  ProcessingState = "SUCCEEDED"
	ProcessingFailed     ProcessingState = "FAILED"
)

// ParseProcessingState normalizes s to a known state. Unknown values are
// returned upper-cased and ok is false.
func ParseProcessingState(s string) (ProcessingState, bool) {
	st := ProcessingState(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ProcessingPending, ProcessingProcessing, ProcessingSucceeded, ProcessingFailed:
		return st, true
	}
	return st, false
}

// Terminal reports whether no further state transitions are expected.
func (s ProcessingState) Terminal() bool {
	return s == ProcessingSucceeded || s == ProcessingFailed
}
