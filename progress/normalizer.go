package progress

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/tubedl/tubedl/engine"
	"github.com/tubedl/tubedl/job"
)

// Normalizer converts raw engine events into a canonical percentage and
// status. It is forgiving: malformed input yields percent 0 and unknown
// status tokens retain the last known status, so a noisy engine can never
// crash a consumer.
//
// A Normalizer is stateful (it remembers the last status) and is not safe
// for concurrent use. The processor drives it from a single goroutine.
type Normalizer struct {
	last job.Status
}

// NewNormalizer returns a Normalizer with StatusDownloading as its initial
// fallback status.
func NewNormalizer() *Normalizer {
	return &Normalizer{last: job.StatusDownloading}
}

// Normalize cleans ev and reports its canonical (percent, status) pair.
// Percent is always within [0, 100].
func (n *Normalizer) Normalize(ev engine.Event) (float64, job.Status) {
	status := n.normalizeStatus(ev.Status)
	n.last = status
	return normalizePercent(ev), status
}

func (n *Normalizer) normalizeStatus(token string) job.Status {
	switch strings.TrimSpace(strings.ToLower(token)) {
	case engine.StatusDownloading, "starting":
		return job.StatusDownloading
	case engine.StatusFinished:
		return job.StatusFinished
	case engine.StatusPostProcessing, "postprocessing", "merging":
		return job.StatusPostprocessing
	case engine.StatusError:
		return job.StatusError
	}
	// Unknown token: retain the last known status.
	return n.last
}

// normalizePercent parses the raw percent string of ev, falling back to the
// byte counters and finally to 0. It never fails.
func normalizePercent(ev engine.Event) float64 {
	raw := strings.TrimSpace(stripControl(ev.Percent))
	raw = strings.TrimSuffix(raw, "%")

	if raw != "" {
		if p, err := strconv.ParseFloat(raw, 64); err == nil {
			return clampPercent(p)
		}
	}

	if ev.TotalBytes > 0 && ev.DownloadedBytes >= 0 {
		return clampPercent(float64(ev.DownloadedBytes) / float64(ev.TotalBytes) * 100)
	}

	return 0
}

func clampPercent(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// stripControl removes ANSI escape sequences and any remaining
// non-printable characters from s. Engines wrap their percent output in
// color codes when they believe they write to a terminal.
func stripControl(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			// A CSI sequence ends with a byte in the 0x40-0x7e range.
			if r >= '@' && r <= '~' && r != '[' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		case unicode.IsPrint(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
