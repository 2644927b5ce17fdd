// Package processor implements the job runner, one of the core entities of
// the service. It owns the single active download job: the pre-flight
// metadata fetch, the spawning of the background execution unit, and the
// wiring of raw engine progress events through the normalizer and aggregator
// into the shared progress state.
//
// The design is a single-slot controller. At most one background unit is
// live; submitting a new job supersedes the active one by cancelling its
// context. Engine callbacks never write shared state directly: they push
// events onto a buffered channel drained by a single consumer goroutine,
// decoupling the engine's tick cadence from state-write contention.
//
//	request ctx                     background unit
//	-----------                     ---------------
//	Submit ──metadata──▶ spawn ──▶  engine.Download
//	                                   │ hook(Event)
//	                                   ▼
//	                                events chan ──▶ consumer ──▶ State
//
// Failures inside the background unit (engine errors, panics) are contained
// at the unit boundary and surface only as an error snapshot on the next
// poll; they can never take down the host process.
package processor

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/tubedl/tubedl/config"
	"github.com/tubedl/tubedl/engine"
	"github.com/tubedl/tubedl/job"
	"github.com/tubedl/tubedl/notifier"
	"github.com/tubedl/tubedl/processor/diskcheck"
	"github.com/tubedl/tubedl/progress"
	"github.com/tubedl/tubedl/stats"
	"github.com/tubedl/tubedl/storage"
)

const (
	// eventBuffer is the capacity of the channel between engine callbacks
	// and the state-writing consumer. Downloading ticks are lossy and may
	// be dropped when the buffer is full; terminal events are not.
	eventBuffer = 64

	metadataTimeout = 1 * time.Minute

	diskCheckInterval = 30 * time.Second

	//Metric Identifiers
	statsSubmitted  = "submitted"  //Counter
	statsFinished   = "finished"   //Counter
	statsFailures   = "failures"   //Counter
	statsSuperseded = "superseded" //Counter
)

// Processor owns the lifecycle of the active download job.
type Processor struct {
	Engine engine.Engine

	// State is the shared progress container polled by clients.
	State *progress.State

	// Storage is optional. When set, terminated jobs are recorded into
	// the history store.
	Storage *storage.Storage

	// Notifier is optional. When set, terminated jobs are posted to the
	// configured callback URL.
	Notifier *notifier.Notifier

	// VideoDir and AudioDir are the kind-dependent destination
	// directories for downloaded files.
	VideoDir string
	AudioDir string

	// OutputTemplate is the engine-native filename template.
	OutputTemplate string

	Log *log.Logger

	// Interval between each stats flush
	StatsIntvl time.Duration

	mu     sync.Mutex
	active *unit

	// healthy mirrors the disk checker's state; submissions are rejected
	// while the media disk is sick.
	healthy bool
	checker diskcheck.Checker

	stats *stats.Stats
}

// unit is one background execution. Its aggregator is driven by a single
// consumer goroutine; cancel stops the engine when the unit is superseded.
type unit struct {
	aggr   *progress.Aggregator
	cancel context.CancelFunc

	// done is set under Processor.mu once the unit has terminated, so
	// preempting a finished unit is not counted as a supersede.
	done bool
}

// New initializes and returns a Processor, or an error if the destination
// directories are not writable.
func New(e engine.Engine, state *progress.State, cfg config.Config, logger *log.Logger) (*Processor, error) {
	for _, dir := range []string{cfg.Media.VideoDir, cfg.Media.AudioDir} {
		if err := verifyWritable(dir); err != nil {
			return nil, err
		}
	}

	checker, err := diskcheck.New(cfg.Media.VideoDir,
		cfg.Media.DiskHigh, cfg.Media.DiskLow, diskCheckInterval)
	if err != nil {
		return nil, err
	}

	return &Processor{
		Engine:         e,
		State:          state,
		VideoDir:       cfg.Media.VideoDir,
		AudioDir:       cfg.Media.AudioDir,
		OutputTemplate: cfg.Media.OutputTemplate,
		Log:            logger,
		StatsIntvl:     5 * time.Second,
		healthy:        true,
		checker:        checker,
		stats:          stats.New("Processor", time.Second, func(m *expvar.Map) {}),
	}, nil
}

// verifyWritable checks that dir exists (creating it if needed) and is
// writable.
func verifyWritable(dir string) error {
	if err := os.MkdirAll(dir, os.FileMode(0755)); err != nil {
		return errors.New("Error verifying destination directory is writable: " + err.Error())
	}
	tmpf, err := os.CreateTemp(dir, "write-check-")
	if err != nil {
		return errors.New("Error verifying destination directory is writable: " + err.Error())
	}
	_, err = tmpf.Write([]byte("a"))
	if err != nil {
		tmpf.Close()
		os.Remove(tmpf.Name())
		return errors.New("Error verifying destination directory is writable: " + err.Error())
	}
	if err = tmpf.Close(); err != nil {
		return errors.New("Error verifying destination directory is writable: " + err.Error())
	}
	if err = os.Remove(tmpf.Name()); err != nil {
		return errors.New("Error verifying destination directory is writable: " + err.Error())
	}
	return nil
}

// Start runs the disk checker and the stats reporter until ctx is
// cancelled, then stops the active background unit, if any.
func (p *Processor) Start(ctx context.Context) {
	go p.checker.Run(ctx)
	go p.watchDisk(ctx)

	p.stats = stats.New("Processor", p.StatsIntvl,
		func(m *expvar.Map) {
			if p.Storage == nil {
				return
			}
			// Autoremove stats after 2 times the interval
			err := p.Storage.SetStats("processor", m.String(), 2*p.StatsIntvl)
			if err != nil {
				p.Log.Println("Could not report stats", err)
			}
		})
	p.stats.Run(ctx)
	p.preempt()
}

// Submit accepts j, performs the metadata pre-fetch and spawns the
// background execution unit. It returns as soon as the unit is spawned,
// never waiting for the download itself.
//
// A non-nil error means the job was rejected (malformed target, unreachable
// metadata) and no background unit was started. Submitting while another job
// is active supersedes it: the previous unit is cancelled and its state
// discarded.
func (p *Processor) Submit(ctx context.Context, j *job.Job) error {
	if !p.diskHealthy() {
		p.stats.Add(statsFailures, 1)
		return errors.New("Not enough disk space to accept new jobs")
	}

	p.preempt()
	p.State.Write(job.Snapshot{Status: job.StatusFetchingMetadata, Total: 1})

	mctx, cancel := context.WithTimeout(ctx, metadataTimeout)
	defer cancel()

	meta, err := p.Engine.FetchMetadata(mctx, j.URL)
	if err != nil {
		p.stats.Add(statsFailures, 1)
		err = fmt.Errorf("Could not fetch info: %s", err)
		p.State.Write(job.Snapshot{Status: job.StatusError, Total: 1, Err: err.Error()})
		return err
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	u := &unit{
		aggr:   progress.NewAggregator(meta.Items),
		cancel: cancelRun,
	}

	p.mu.Lock()
	p.active = u
	p.mu.Unlock()

	// Initial downloading snapshot: item count known, nothing fetched yet.
	p.State.Write(u.aggr.Apply(0, job.StatusDownloading, meta.Title))

	p.stats.Add(statsSubmitted, 1)
	p.Log.Println("Starting background download for", j)
	go p.run(runCtx, u, j)

	return nil
}

// run is the background execution unit. Engine failures and panics are
// contained here; nothing may escape to terminate the host process.
func (p *Processor) run(ctx context.Context, u *unit, j *job.Job) {
	defer func() {
		if r := recover(); r != nil {
			p.Log.Printf("run: recovered panic in %s: %v", j, r)
			p.finalize(u, j, u.aggr.Fail(fmt.Sprintf("internal error: %v", r)))
		}
	}()

	events := make(chan engine.Event, eventBuffer)
	drained := make(chan struct{})

	// Single consumer: normalizes, aggregates and writes the snapshot.
	go func() {
		defer close(drained)
		norm := progress.NewNormalizer()
		for ev := range events {
			percent, status := norm.Normalize(ev)
			p.write(u, u.aggr.Apply(percent, status, ev.Title))
		}
	}()

	hook := func(ev engine.Event) {
		if ev.Status == engine.StatusDownloading {
			// Downloading ticks arrive at sub-second frequency and
			// are superseded by later ones; dropping under pressure
			// is fine and keeps the engine from ever blocking here.
			select {
			case events <- ev:
			default:
			}
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	spec := engine.Spec{
		URL:            j.URL,
		Kind:           j.Kind,
		Quality:        j.Quality,
		DestDir:        p.destDir(j.Kind),
		OutputTemplate: p.OutputTemplate,
	}

	err := p.Engine.Download(ctx, spec, hook)
	close(events)
	<-drained

	if err != nil {
		p.Log.Printf("run: Error downloading %s: %s", j, err)
		p.stats.Add(statsFailures, 1)
		p.finalize(u, j, u.aggr.Fail(err.Error()))
		return
	}

	p.stats.Add(statsFinished, 1)
	p.finalize(u, j, u.aggr.Finish())
}

// finalize publishes the terminal snapshot and performs the bookkeeping for
// a terminated job. Superseded units are discarded silently.
func (p *Processor) finalize(u *unit, j *job.Job, final job.Snapshot) {
	p.mu.Lock()
	active := p.active == u
	if active {
		u.done = true
	}
	p.mu.Unlock()
	if !active {
		return
	}

	p.State.Write(final)

	rec := job.NewRecord(j, final)
	if p.Storage != nil {
		if err := p.Storage.AddRecord(&rec); err != nil {
			p.Log.Printf("finalize: Error recording %s: %s", j, err)
		}
	}
	if p.Notifier != nil {
		if err := p.Notifier.Notify(&rec); err != nil {
			p.Log.Printf("finalize: Error notifying for %s: %s", j, err)
		}
	}
}

// write publishes snap unless u has been superseded in the meantime. This
// keeps exactly one live writer on the shared state.
func (p *Processor) write(u *unit, snap job.Snapshot) {
	p.mu.Lock()
	active := p.active == u
	p.mu.Unlock()
	if active {
		p.State.Write(snap)
	}
}

// watchDisk mirrors the disk checker's state transitions into p.healthy.
func (p *Processor) watchDisk(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case h := <-p.checker.C():
			p.mu.Lock()
			p.healthy = h == diskcheck.Healthy
			p.mu.Unlock()
			p.Log.Println("Disk state changed to", h)
		}
	}
}

func (p *Processor) diskHealthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

// preempt cancels and detaches the active background unit, if any.
func (p *Processor) preempt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != nil {
		p.active.cancel()
		if !p.active.done {
			p.stats.Add(statsSuperseded, 1)
		}
		p.active = nil
	}
}

// destDir resolves the destination directory for a download kind. It is a
// pure function of the kind.
func (p *Processor) destDir(k job.Kind) string {
	if k == job.KindAudio {
		return p.AudioDir
	}
	return p.VideoDir
}
