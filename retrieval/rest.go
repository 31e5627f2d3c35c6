package retrieval

import (
	"context"
	"iter"

	"github.com/pkg/errors"

	"github.com/glasswalk3r/jenkins-jobs/jenkins"
)

// JobReader is the part of the Jenkins client the REST source needs.
type JobReader interface {
	ListJobs(ctx context.Context, folderDepth int) ([]jenkins.JobSummary, error)
	GetJobConfig(ctx context.Context, name string) ([]byte, error)
}

// RESTSource reads job configurations from a live Jenkins server. Each job's
// config.xml is requested when the job is pulled.
type RESTSource struct {
	client      JobReader
	folderDepth int
}

// NewRESTSource lists the top level jobs and, when folderDepth is positive,
// the jobs inside folders up to that depth. Folders that are descended into
// are not reported themselves.
func NewRESTSource(client JobReader, folderDepth int) *RESTSource {
	return &RESTSource{client: client, folderDepth: folderDepth}
}

func (s *RESTSource) Entries(ctx context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		list, err := s.client.ListJobs(ctx, s.folderDepth)
		if err != nil {
			yield(Entry{}, errors.Wrap(err, "listing jobs"))
			return
		}
		for _, summary := range list {
			if s.folderDepth > 0 && summary.IsFolder() {
				continue
			}
			if err := ctx.Err(); err != nil {
				yield(Entry{}, err)
				return
			}
			entry, err := s.fetch(ctx, summary.Name)
			if !yield(entry, err) {
				return
			}
		}
	}
}

func (s *RESTSource) fetch(ctx context.Context, name string) (Entry, error) {
	data, err := s.client.GetJobConfig(ctx, name)
	if err != nil {
		return Entry{}, &JobError{Name: name, Err: err}
	}
	cfg, err := jenkins.ParseConfig(data)
	if err != nil {
		return Entry{}, &JobError{Name: name, Err: err}
	}
	return Entry{Name: name, Config: cfg}, nil
}
