package retrieval

import (
	"context"
	"iter"

	"github.com/pkg/errors"

	"github.com/glasswalk3r/jenkins-jobs/snapshot"
)

// SnapshotSource reads job configurations saved by the exporter, in name
// order.
type SnapshotSource struct {
	store *snapshot.Store
}

func NewSnapshotSource(store *snapshot.Store) *SnapshotSource {
	return &SnapshotSource{store: store}
}

func (s *SnapshotSource) Entries(ctx context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		names, err := s.store.Names(ctx)
		if err != nil {
			yield(Entry{}, errors.Wrapf(err, "listing snapshot %s", s.store.Dir()))
			return
		}
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				yield(Entry{}, err)
				return
			}
			cfg, err := s.store.Get(name)
			if err != nil {
				if !yield(Entry{}, &JobError{Name: name, Err: err}) {
					return
				}
				continue
			}
			if !yield(Entry{Name: name, Config: cfg}, nil) {
				return
			}
		}
	}
}
