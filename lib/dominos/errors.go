package dominos

import "fmt"

// PreconditionError reports an operation invoked before the session state it
// depends on exists, or with a fulfilment method the store cannot serve.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// ValidationError reports malformed caller input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StatusError reports a non-200 response from the remote. The client never
// retries on its own, the remote session is stateful and a blind retry can
// apply a mutation twice.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// NotFoundError reports a failed bulk name resolution, carrying the closest
// known name when one is close enough to be worth suggesting.
type NotFoundError struct {
	Kind       string
	Name       string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q not found, did you mean %q?", e.Kind, e.Name, e.Suggestion)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}
