// Package engine abstracts the external component that performs the actual
// media transfer and transcode. The rest of the service only ever sees the
// Engine interface and the raw progress Events it emits.
package engine

import (
	"context"

	"github.com/tubedl/tubedl/job"
)

// The status tokens an engine emits with each progress event. They are
// engine-native and deliberately loose; normalization into job.Status
// happens downstream.
const (
	StatusDownloading    = "downloading"
	StatusFinished       = "finished"
	StatusPostProcessing = "post_processing"
	StatusError          = "error"
)

// Metadata is the result of the pre-flight metadata fetch.
type Metadata struct {
	// Title of the resource (playlist title for multi-item jobs)
	Title string

	// Items is the number of discrete media units the job will download.
	// At least 1.
	Items int
}

// Spec describes one download to be performed by an engine.
type Spec struct {
	URL     string
	Kind    job.Kind
	Quality int

	// DestDir is the directory downloaded files are written under.
	DestDir string

	// OutputTemplate is the engine-native filename template, e.g.
	// "%(title)s.%(ext)s".
	OutputTemplate string
}

// Event is one raw progress tick as reported by an engine.
//
// Events are noisy: Percent may carry terminal control sequences, byte
// counters may be zero or missing, Status may hold unknown tokens. Consumers
// must never fail on a malformed Event.
type Event struct {
	// Status is the engine-native status token, see the Status* constants.
	Status string

	// Percent is the raw percentage string, e.g. " 42.0%" possibly
	// wrapped in color escape sequences.
	Percent string

	// DownloadedBytes and TotalBytes are used as a fallback when Percent
	// is unusable. Zero when unknown.
	DownloadedBytes int64
	TotalBytes      int64

	// Title of the item the event refers to, best-effort.
	Title string
}

// Engine is the interface implemented by media download engines.
//
// Download blocks until the whole job (all items) has been transferred,
// invoking hook for every progress tick. The hook must be fast; engines may
// emit sub-second ticks.
type Engine interface {
	// FetchMetadata resolves url without downloading anything and reports
	// the item count and title.
	FetchMetadata(ctx context.Context, url string) (Metadata, error)

	// Download performs the transfer described by spec. Any failure is
	// returned as an error, never panicked.
	Download(ctx context.Context, spec Spec, hook func(Event)) error
}
