package report

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/glasswalk3r/jenkins-jobs/logging"
	"github.com/glasswalk3r/jenkins-jobs/retrieval"
	"github.com/glasswalk3r/jenkins-jobs/snapshot"
)

// ConfigDownloader saves a job's raw config.xml into a directory.
type ConfigDownloader interface {
	retrieval.JobReader
	DownloadJobConfig(ctx context.Context, name string, destDir string) (string, error)
}

// Exporter copies job configurations from Jenkins into a snapshot, and
// optionally keeps the raw XML files too.
type Exporter struct {
	client      ConfigDownloader
	store       *snapshot.Store
	rawDir      string
	folderDepth int
	log         *logrus.Entry
}

func NewExporter(client ConfigDownloader, store *snapshot.Store) *Exporter {
	return &Exporter{
		client: client,
		store:  store,
		log:    logging.GetLogger().For("exporter").WithField("snapshot", store.Dir()),
	}
}

// SetRawDir keeps a copy of every config.xml under dir.
func (e *Exporter) SetRawDir(dir string) *Exporter {
	e.rawDir = dir
	return e
}

func (e *Exporter) SetFolderDepth(depth int) *Exporter {
	e.folderDepth = depth
	return e
}

// Run replaces the snapshot content with the jobs currently on Jenkins. It
// stops at the first job that cannot be fetched, keeping what was saved so
// far, and returns how many jobs were saved.
func (e *Exporter) Run(ctx context.Context) (int, error) {
	e.log.Info("Starting export")
	if err := e.store.Reset(); err != nil {
		return 0, err
	}
	saved := 0
	for entry, err := range retrieval.NewRESTSource(e.client, e.folderDepth).Entries(ctx) {
		if err != nil {
			e.log.WithError(err).Error("export stopped")
			return saved, err
		}
		if err := e.store.Put(entry.Name, entry.Config); err != nil {
			return saved, err
		}
		if e.rawDir != "" {
			if _, err := e.client.DownloadJobConfig(ctx, entry.Name, e.rawDir); err != nil {
				return saved, errors.Wrapf(err, "saving raw configuration of %s", entry.Name)
			}
		}
		jobsExported.Inc()
		saved++
	}
	e.log.Infof("Finished, %d jobs exported", saved)
	return saved, nil
}
