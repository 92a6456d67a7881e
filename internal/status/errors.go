package status

import "fmt"

const statusQueryFailedTemplateConstant = "unable to query repository status: %v"

// StatusQueryFailedError reports that pending changes could not be listed.
type StatusQueryFailedError struct {
	Cause error
}

// Error describes the failed query.
func (failure StatusQueryFailedError) Error() string {
	return fmt.Sprintf(statusQueryFailedTemplateConstant, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure StatusQueryFailedError) Unwrap() error {
	return failure.Cause
}
