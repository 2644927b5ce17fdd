// Package diskcheck monitors the disk usage of the media directory and
// reports health state transitions, so the processor can stop accepting
// jobs before the disk fills up.
package diskcheck

import (
	"context"
	"errors"
	"log"
	"syscall"
	"time"
)

const (
	// Healthy represents a disk usage below the given threshold.
	Healthy Health = Health(true)

	// Sick represents a disk usage above the given threshold.
	Sick = Health(false)
)

// swapped out in tests
var statfs = syscall.Statfs

// Checker watches a directory's disk usage and writes to C whenever the
// health state changes. The disk is authoritatively considered healthy at
// start; the first message on C is therefore always Sick.
//
// Crossing the high threshold turns the state Sick, and it stays Sick
// until usage drops back below the low threshold. The gap between the two
// keeps the state from flapping around a single threshold.
type Checker interface {
	Run(ctx context.Context)
	C() chan Health
}

// Health represents the disk health state.
type Health bool

func (h Health) String() string {
	if h == Healthy {
		return "healthy"
	}
	return "sick"
}

// diskUsage is a disk usage percentage.
type diskUsage int

type diskChecker struct {
	interval time.Duration

	// path is the directory whose filesystem is checked
	path string

	// usage thresholds (%)
	high, low diskUsage

	c chan Health
}

// New returns a new checker for the provided directory path and
// thresholds.
func New(path string, high int, low int, interval time.Duration) (Checker, error) {
	if low >= high {
		return nil, errors.New("low threshold must be smaller than high")
	}
	if low < 0 || low > 100 {
		return nil, errors.New("low threshold must be between 0 and 100")
	}
	if high < 0 || high > 100 {
		return nil, errors.New("high threshold must be between 0 and 100")
	}
	if _, err := fetchDiskUsage(path); err != nil {
		return nil, err
	}

	return &diskChecker{
		path:     path,
		high:     diskUsage(high),
		low:      diskUsage(low),
		interval: interval,
		c:        make(chan Health),
	}, nil
}

// C is the health state communication channel. Messages appear only on
// state changes.
func (d *diskChecker) C() chan Health {
	return d.c
}

// Run alternates between the two waiting states until ctx is canceled.
// The currently-running wait function implies the current health state, so
// no state needs to be stored.
func (d *diskChecker) Run(ctx context.Context) {
	for {
		if err := d.waitForSick(ctx); err != nil {
			return
		}
		if err := d.waitForHealthy(ctx); err != nil {
			return
		}
	}
}

func (d *diskChecker) waitForSick(ctx context.Context) error {
	tick := time.NewTicker(d.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			du, err := fetchDiskUsage(d.path)
			if err != nil {
				log.Printf("[diskcheck] Disk usage error in waitForSick: %v", err)
				continue
			}
			if du > d.high {
				d.c <- Sick
				return nil
			}
		}
	}
}

func (d *diskChecker) waitForHealthy(ctx context.Context) error {
	tick := time.NewTicker(d.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			du, err := fetchDiskUsage(d.path)
			if err != nil {
				log.Printf("[diskcheck] Disk usage error in waitForHealthy: %v", err)
				continue
			}
			if du <= d.low {
				d.c <- Healthy
				return nil
			}
		}
	}
}

func fetchDiskUsage(path string) (diskUsage, error) {
	fs := syscall.Statfs_t{}
	err := statfs(path, &fs)
	if err != nil {
		return 0, errors.New("Could not get file system statistics: " + err.Error())
	}
	all := fs.Blocks * uint64(fs.Bsize)
	free := fs.Bfree * uint64(fs.Bsize)
	used := all - free
	usage := (float32(used) / float32(all)) * 100
	return diskUsage(usage), nil
}
