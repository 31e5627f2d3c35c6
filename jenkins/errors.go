package jenkins

import "fmt"

type jenkinsError struct {
	context string
	err     error
}

func (e *jenkinsError) Error() string {
	if e.err != nil {
		return e.context + " - " + e.err.Error()
	} else {
		return e.context
	}
}

func (e *jenkinsError) Unwrap() error {
	return e.err
}

func newJenkinsError(ctx string, failure error) *jenkinsError {
	return &jenkinsError{
		context: ctx,
		err:     failure,
	}
}

// NotFoundError is returned when Jenkins answers 404, usually because the
// job does not exist.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.URL
}

// SchemaMissingError is returned when the Jenkins address has no http or
// https scheme. It is detected before any request is made.
type SchemaMissingError struct {
	URL string
}

func (e *SchemaMissingError) Error() string {
	return fmt.Sprintf("the Jenkins URL %q must start with http:// or https://", e.URL)
}
