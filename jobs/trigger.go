package jobs

import "github.com/glasswalk3r/jenkins-jobs/normalize"

// TimerTriggerNode is the element Jenkins uses for a cron-like build trigger.
const TimerTriggerNode = "hudson.triggers.TimerTrigger"

const specNode = "spec"

// TimerTrigger is the outcome of searching a job configuration for a timer
// trigger. A trigger can be defined without a schedule: Jenkins keeps the
// element around when the schedule is cleared.
type TimerTrigger struct {
	defined bool
	spec    *string
}

// NoTimerTrigger is the result for jobs that are not timer based.
func NoTimerTrigger() TimerTrigger {
	return TimerTrigger{}
}

// NewTimerTrigger builds a defined trigger from a raw schedule. Comment and
// blank lines are removed; a schedule left empty is treated as no schedule.
func NewTimerTrigger(rawSpec *string) TimerTrigger {
	spec := normalize.Spec(rawSpec)
	if spec == nil || *spec == "" {
		return TimerTrigger{defined: true}
	}
	return TimerTrigger{defined: true, spec: spec}
}

// IsDefined tells if the job is timer trigger based.
func (t TimerTrigger) IsDefined() bool {
	return t.defined
}

// Spec returns the schedule, if there is one.
func (t TimerTrigger) Spec() (string, bool) {
	if t.spec == nil {
		return "", false
	}
	return *t.spec, true
}

// timerTriggerFrom reads the schedule out of a TimerTrigger element.
func timerTriggerFrom(node interface{}) TimerTrigger {
	spec, ok := child(node, specNode)
	if !ok {
		return NewTimerTrigger(nil)
	}
	return NewTimerTrigger(text(spec))
}

// locateTimerTrigger looks for a TimerTrigger element below cfg. Every key in
// required must exist or a MissingElementError naming it is returned. Keys in
// optional may be absent or empty, which means the job is not timer based.
func locateTimerTrigger(jobName string, cfg RawConfig, required, optional []string) (TimerTrigger, error) {
	node, missing, ok := lookup(cfg, required...)
	if !ok {
		return TimerTrigger{}, &MissingElementError{Element: missing, Context: ContextTimerTrigger, JobName: jobName}
	}
	if node, _, ok = lookup(node, optional...); !ok {
		return NoTimerTrigger(), nil
	}
	timer, ok := child(node, TimerTriggerNode)
	if !ok {
		return NoTimerTrigger(), nil
	}
	return timerTriggerFrom(timer), nil
}
