// Package report prints job reports and exports Jenkins job configurations
// into snapshots.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/glasswalk3r/jenkins-jobs/logging"
	"github.com/glasswalk3r/jenkins-jobs/retrieval"
)

// Summary tells how a report run went.
type Summary struct {
	Reported int
	Failed   int
	Errors   []error
}

func (s Summary) String() string {
	return fmt.Sprintf("%d jobs reported, %d failed", s.Reported, s.Failed)
}

// Reporter writes one line per job. By default a job that cannot be
// classified or fetched is logged and skipped; with fail fast the run stops
// at the first one.
type Reporter struct {
	retriever retrieval.JobRetriever
	out       io.Writer
	failFast  bool
	log       *logrus.Entry
}

func NewReporter(retriever retrieval.JobRetriever, out io.Writer) *Reporter {
	return &Reporter{
		retriever: retriever,
		out:       out,
		log:       logging.GetLogger().For("reporter"),
	}
}

func (r *Reporter) SetFailFast(failFast bool) *Reporter {
	r.failFast = failFast
	return r
}

// Run reports every job. The error is set when the run could not finish:
// the job source failed, output could not be written, or fail fast stopped
// it. Skipped jobs are only counted in the summary.
func (r *Reporter) Run(ctx context.Context) (Summary, error) {
	var summary Summary
	for job, err := range r.retriever.AllJobs(ctx) {
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, err)
			jobsFailed.WithLabelValues(failureReason(err)).Inc()

			var jobErr *retrieval.JobError
			if !errors.As(err, &jobErr) {
				r.log.WithError(err).Error("cannot retrieve jobs")
				return summary, err
			}
			if r.failFast {
				r.log.WithError(err).Error("stopping at the first failed job")
				return summary, err
			}
			r.log.WithField("job", jobErr.Name).WithError(jobErr.Err).Warn("skipping job")
			continue
		}
		if _, err := fmt.Fprintln(r.out, job.String()); err != nil {
			return summary, err
		}
		recordJob(job)
		summary.Reported++
	}
	r.log.Info(summary.String())
	return summary, nil
}
