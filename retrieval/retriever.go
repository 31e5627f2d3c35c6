// Package retrieval feeds job configurations from Jenkins or from a snapshot
// through the job factory.
package retrieval

import (
	"context"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/glasswalk3r/jenkins-jobs/jobs"
	"github.com/glasswalk3r/jenkins-jobs/logging"
)

// Entry is a job name with its parsed configuration.
type Entry struct {
	Name   string
	Config jobs.RawConfig
}

// Source produces job configurations. Every call to Entries starts a new
// traversal, and nothing is fetched before it is pulled. Failures tied to a
// job are yielded as *JobError and the traversal goes on; any other error
// ends it.
type Source interface {
	Entries(ctx context.Context) iter.Seq2[Entry, error]
}

// JobError ties a failure to the job it happened on.
type JobError struct {
	Name string
	Err  error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %q: %v", e.Name, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// JobRetriever is what reporters consume.
type JobRetriever interface {
	AllJobs(ctx context.Context) iter.Seq2[*jobs.Job, error]
}

// Retriever classifies everything a Source produces.
type Retriever struct {
	source  Source
	factory *jobs.Factory
	log     *logrus.Entry
}

func New(source Source, factory *jobs.Factory) *Retriever {
	return &Retriever{
		source:  source,
		factory: factory,
		log:     logging.GetLogger().For("retriever"),
	}
}

// AllJobs returns the jobs of the source, lazily. A job that cannot be
// classified is yielded as a nil job with a *JobError at its position.
func (r *Retriever) AllJobs(ctx context.Context) iter.Seq2[*jobs.Job, error] {
	return func(yield func(*jobs.Job, error) bool) {
		for entry, err := range r.source.Entries(ctx) {
			if err != nil {
				if !yield(nil, err) {
					return
				}
				continue
			}
			job, err := r.factory.Build(entry.Name, entry.Config)
			if err != nil {
				r.log.WithField("job", entry.Name).Debugf("classification failed: %v", err)
				err = &JobError{Name: entry.Name, Err: err}
			}
			if !yield(job, err) {
				return
			}
		}
	}
}
