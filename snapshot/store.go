// Package snapshot keeps parsed job configurations on disk so reports can
// be produced without talking to Jenkins.
package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/glasswalk3r/jenkins-jobs/common"
	"github.com/glasswalk3r/jenkins-jobs/jobs"
	"github.com/glasswalk3r/jenkins-jobs/logging"
)

// ErrNotFound is returned by Get for names that are not in the snapshot.
var ErrNotFound = errors.New("job not in snapshot")

// ErrNotSnapshot is returned by Reset for a non-empty directory the store
// never wrote to.
var ErrNotSnapshot = errors.New("directory is not a jobs snapshot")

const (
	keyExt = ".json"
	// markerFile flags a directory as owned by the store.
	markerFile = ".jenkins-jobs-snapshot"
)

// Store maps job names to their parsed configuration. Each job is one JSON
// file under the store directory. Other files found there are left alone.
type Store struct {
	dir  string
	disk *diskv.Diskv
	log  *logrus.Entry
}

// Open returns the store kept under dir. The directory is created on the
// first write.
func Open(dir string) *Store {
	return &Store{
		dir: dir,
		disk: diskv.New(diskv.Options{
			BasePath: dir,
			FilePerm: 0600,
			PathPerm: 0700,
		}),
		log: logging.GetLogger().For("snapshot").WithField("dir", dir),
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func key(name string) string {
	return common.FileName(name) + keyExt
}

// jobName maps a file found in the store directory back to the job saved in
// it. Files the store did not write give false.
func (s *Store) jobName(file string) (string, bool) {
	base, ok := strings.CutSuffix(file, keyExt)
	if !ok {
		return "", false
	}
	name, err := common.JobName(base)
	if err != nil || common.FileName(name) != base {
		return "", false
	}
	// diskv walks subdirectories too, only top level files are jobs
	info, err := os.Lstat(filepath.Join(s.dir, file))
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

func (s *Store) marked() bool {
	_, err := os.Stat(filepath.Join(s.dir, markerFile))
	return err == nil
}

func (s *Store) mark() error {
	if s.marked() {
		return nil
	}
	return os.WriteFile(filepath.Join(s.dir, markerFile), nil, 0600)
}

// Put saves cfg under name, replacing what was there.
func (s *Store) Put(name string, cfg jobs.RawConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrapf(err, "encoding configuration of %s", name)
	}
	if err := s.disk.Write(key(name), data); err != nil {
		return errors.Wrapf(err, "saving configuration of %s", name)
	}
	if err := s.mark(); err != nil {
		return errors.Wrapf(err, "marking snapshot %s", s.dir)
	}
	s.log.WithField("job", name).Debug("saved configuration")
	return nil
}

// Get loads the configuration saved under name.
func (s *Store) Get(name string) (jobs.RawConfig, error) {
	data, err := s.disk.Read(key(name))
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrNotFound, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading configuration of %s", name)
	}
	var cfg jobs.RawConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decoding configuration of %s", name)
	}
	return cfg, nil
}

// Names lists the saved job names in sorted order.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	names := []string{}
	for file := range s.disk.Keys(ctx.Done()) {
		name, ok := s.jobName(file)
		if !ok {
			if file != markerFile {
				s.log.WithField("file", file).Debug("skipping file that is not a saved job")
			}
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Reset removes every saved job. Files the store did not write stay. A
// directory holding files but never written by a store is refused with
// ErrNotSnapshot.
func (s *Store) Reset() error {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "clearing snapshot %s", s.dir)
	}
	if len(entries) > 0 && !s.marked() {
		return errors.Wrap(ErrNotSnapshot, s.dir)
	}
	names, err := s.Names(context.Background())
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := s.disk.Erase(key(name)); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "clearing snapshot %s", s.dir)
		}
	}
	s.log.Debugf("removed %d saved jobs", len(names))
	return nil
}
