// Package stats encapsulates an expvar Map and acts as a metric reporting
// interface for each module.
package stats

import (
	"context"
	"expvar"
	"log"
	"time"
)

type Stats struct {
	*expvar.Map
	interval   time.Duration
	reportfunc func(m *expvar.Map)
}

// Run calls the report function of Stats using the specified interval.
// It shuts down when the provided context is cancelled
func (s *Stats) Run(ctx context.Context) {
	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("Stats Deamon Exiting")
			return
		case <-tick.C:
			s.reportfunc(s.Map)
		}
	}
}

// New initializes a Stats reporter for id. The expvar map for id is reused
// if it has been published before, since expvar forbids re-registration.
func New(id string, interval time.Duration, report func(*expvar.Map)) *Stats {
	m, ok := expvar.Get(id).(*expvar.Map)
	if !ok {
		m = expvar.NewMap(id)
	}
	return &Stats{m, interval, report}
}
