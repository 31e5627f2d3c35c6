package jobs

import "fmt"

const (
	// ContextDescription is used when the job description cannot be located.
	ContextDescription = "the job description"
	// ContextTimerTrigger is used when the path to a timer trigger is broken.
	ContextTimerTrigger = "a timer trigger"
)

// MissingElementError is returned when an element a job variant expects is
// absent from the job configuration.
type MissingElementError struct {
	Element string
	Context string
	JobName string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("Could not locate %q element while searching for %s in %q", e.Element, e.Context, e.JobName)
}

// UnknownJobTypeError is returned when a plugin identifier has no registered
// job variant.
type UnknownJobTypeError struct {
	JobType string
}

func (e *UnknownJobTypeError) Error() string {
	return fmt.Sprintf("Unknown job type %q", e.JobType)
}

// InvalidConfigError is returned when the top-level structure of a job
// configuration is missing, so it cannot be classified at all.
type InvalidConfigError struct {
	Key string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("Unexpected data, missing %q root key in data structure", e.Key)
}
