package report

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/glasswalk3r/jenkins-jobs/jobs"
)

var (
	jobsReported = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jenkins_jobs_reported_total",
		Help: "Number of jobs classified and reported, by job type.",
	}, []string{"kind", "timer_trigger"})
	jobsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "jenkins_jobs_failed_total",
		Help: "Number of jobs that could not be reported, by reason.",
	}, []string{"reason"})
	jobsExported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "jenkins_jobs_exported_total",
		Help: "Number of job configurations saved into the snapshot.",
	})
)

func init() {
	prometheus.MustRegister(jobsReported)
	prometheus.MustRegister(jobsFailed)
	prometheus.MustRegister(jobsExported)
}

// failureReason maps an error to a low cardinality label.
func failureReason(err error) string {
	var (
		missing *jobs.MissingElementError
		unknown *jobs.UnknownJobTypeError
		invalid *jobs.InvalidConfigError
	)
	switch {
	case errors.As(err, &missing):
		return "missing_element"
	case errors.As(err, &unknown):
		return "unknown_job_type"
	case errors.As(err, &invalid):
		return "invalid_config"
	}
	return "retrieval"
}

func recordJob(job *jobs.Job) {
	timer := "false"
	if job.TimerTriggerBased() {
		timer = "true"
	}
	jobsReported.WithLabelValues(job.Kind().String(), timer).Inc()
}

// WriteMetrics saves every registered metric to path in the text format
// read by the node exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
