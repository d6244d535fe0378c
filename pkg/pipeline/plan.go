package pipeline

import (
	"path/filepath"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/source"
)

// Job is one card to produce. A job with Err set is skipped by the runner.
type Job struct {
	ID           string
	Illustration string
	Record       source.Record
	Err          error
}

// Plan pairs illustrations with their rows. Illustrations without a row get
// a LOOKUP error. When several files share an identifier, the first one in
// scan order is used and the rest are skipped, since they would all be
// written to the same output file.
func Plan(ills []source.Illustration, recs *source.Records) []Job {
	jobs := make([]Job, 0, len(ills))
	first := map[string]string{}
	for _, ill := range ills {
		job := Job{ID: ill.ID, Illustration: ill.Path}
		if prev, dup := first[ill.ID]; dup {
			job.Err = errors.New(errors.ErrCodeInvalidInput, "duplicate illustration for %s (using %s)", ill.ID, filepath.Base(prev))
			jobs = append(jobs, job)
			continue
		}
		first[ill.ID] = ill.Path

		rec, err := recs.Lookup(ill.ID)
		if err != nil {
			job.Err = err
		}
		job.Record = rec
		jobs = append(jobs, job)
	}
	return jobs
}
