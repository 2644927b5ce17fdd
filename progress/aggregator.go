package progress

import "github.com/tubedl/tubedl/job"

// Aggregator folds normalized per-item progress into the overall job figure.
//
// For multi-item jobs (playlists) it tracks how many items have completed
// while reporting the in-flight item's own percentage untouched; the two are
// deliberately kept as separate fields instead of being blended into one
// number.
//
// An Aggregator tracks a single job and is not safe for concurrent use; the
// processor drives it from a single goroutine.
type Aggregator struct {
	total     int
	completed int
	title     string
	percent   float64
	status    job.Status

	// itemDone guards against duplicate "finished" signals for the same
	// item. It is armed when an item completes and disarmed by the first
	// downloading tick of the next item.
	itemDone bool
}

// NewAggregator returns an Aggregator for a job of total items. A total
// below 1 (engine could not report a count) defaults to 1.
func NewAggregator(total int) *Aggregator {
	if total < 1 {
		total = 1
	}
	return &Aggregator{total: total, status: job.StatusDownloading}
}

// Apply folds one normalized event into the aggregate and returns the
// resulting snapshot.
func (a *Aggregator) Apply(percent float64, status job.Status, title string) job.Snapshot {
	if title != "" {
		a.title = title
	}

	switch status {
	case job.StatusDownloading:
		a.itemDone = false
		a.percent = clampPercent(percent)
		a.status = job.StatusDownloading
	case job.StatusPostprocessing:
		// Postprocessing ticks rarely carry usable percentages; keep
		// the last downloaded one.
		a.status = job.StatusPostprocessing
	case job.StatusFinished:
		if !a.itemDone && a.completed < a.total {
			a.completed++
			a.itemDone = true
		}
		a.percent = 100
		// The job as a whole is only finished once the engine returns;
		// an item completing mid-playlist keeps the job downloading.
		a.status = job.StatusDownloading
	case job.StatusError:
		a.status = job.StatusError
	}

	return a.Snapshot()
}

// Snapshot returns the current aggregate as a job.Snapshot.
func (a *Aggregator) Snapshot() job.Snapshot {
	return job.Snapshot{
		Percent: a.percent,
		Current: a.completed,
		Total:   a.total,
		Title:   a.title,
		Status:  a.status,
	}
}

// Finish marks the whole job as successfully completed and returns the
// terminal snapshot. Called when the engine reports no further items.
func (a *Aggregator) Finish() job.Snapshot {
	a.completed = a.total
	a.percent = 100
	a.status = job.StatusFinished
	a.itemDone = true
	return a.Snapshot()
}

// Fail marks the job as failed with a human-readable message and returns
// the terminal snapshot.
func (a *Aggregator) Fail(msg string) job.Snapshot {
	a.status = job.StatusError
	s := a.Snapshot()
	s.Err = msg
	return s
}
