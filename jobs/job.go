package jobs

import (
	"strings"

	"github.com/glasswalk3r/jenkins-jobs/normalize"
)

const (
	separator     = "|"
	notApplicable = "not applicable"
)

// Job is a classified Jenkins job. It is immutable once built.
type Job struct {
	name        string
	kind        Kind
	description string
	timer       TimerTrigger
}

// New builds a job of the given variant from its configuration. Errors from
// the variant lookups are returned as they are.
func New(name string, cfg RawConfig, variant Variant) (*Job, error) {
	desc, err := variant.FindDescription(name, cfg)
	if err != nil {
		return nil, err
	}
	timer, err := variant.FindTimerTrigger(name, cfg)
	if err != nil {
		return nil, err
	}
	return &Job{
		name:        name,
		kind:        variant.Kind(),
		description: normalize.Description(desc),
		timer:       timer,
	}, nil
}

func (j *Job) Name() string {
	return j.name
}

func (j *Job) Kind() Kind {
	return j.kind
}

// Description is the single line job description.
func (j *Job) Description() string {
	return j.description
}

func (j *Job) TimerTriggerBased() bool {
	return j.timer.IsDefined()
}

// TimerTriggerSpec returns the cleaned timer schedule. It is only set for
// timer based jobs, and may be unset for those too when the trigger has no
// schedule.
func (j *Job) TimerTriggerSpec() (string, bool) {
	return j.timer.Spec()
}

// String renders the job as a pipe separated report line:
// name|kind|description|True|spec or name|kind|description|False|not applicable.
func (j *Job) String() string {
	based, spec := "False", notApplicable
	if j.timer.IsDefined() {
		based = "True"
		spec, _ = j.timer.Spec()
	}
	return strings.Join([]string{j.name, j.kind.String(), j.description, based, spec}, separator)
}
