package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/tubedl/tubedl/job"
)

// DefaultProgressInterval is how often the yt-dlp wrapper flushes progress
// updates to the hook.
const DefaultProgressInterval = 500 * time.Millisecond

// YTDLP is the production Engine implementation, wrapping the yt-dlp binary
// through the go-ytdlp bindings.
type YTDLP struct {
	// ProgressInterval throttles how often progress ticks are emitted.
	ProgressInterval time.Duration
}

// NewYTDLP returns a YTDLP engine emitting progress every interval. A
// non-positive interval selects DefaultProgressInterval.
func NewYTDLP(interval time.Duration) *YTDLP {
	if interval <= 0 {
		interval = DefaultProgressInterval
	}
	return &YTDLP{ProgressInterval: interval}
}

// FetchMetadata resolves url without downloading and reports the number of
// items (playlist entries, or 1 for a single video) along with the title.
func (y *YTDLP) FetchMetadata(ctx context.Context, url string) (Metadata, error) {
	dl := ytdlp.New().
		Quiet().
		SkipDownload().
		FlatPlaylist().
		DumpSingleJSON()

	result, err := dl.Run(ctx, url)
	if err != nil {
		return Metadata{}, fmt.Errorf("Could not fetch info for %s: %s", url, err)
	}

	var info map[string]interface{}
	if err := json.Unmarshal([]byte(result.Stdout), &info); err != nil {
		return Metadata{}, errors.New("Could not decode media info: " + err.Error())
	}

	meta := Metadata{Items: 1}
	if title, ok := info["title"].(string); ok {
		meta.Title = title
	}
	if entries, ok := info["entries"].([]interface{}); ok {
		meta.Items = len(entries)
	}
	if meta.Items < 1 {
		return Metadata{}, errors.New("No downloadable items found")
	}

	return meta, nil
}

// Download performs the transfer described by spec, mapping yt-dlp progress
// updates onto Events.
func (y *YTDLP) Download(ctx context.Context, spec Spec, hook func(Event)) error {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Output(filepath.Join(spec.DestDir, spec.OutputTemplate))

	switch spec.Kind {
	case job.KindAudio:
		dl = dl.ExtractAudio().
			AudioFormat("mp3").
			AudioQuality(strconv.Itoa(spec.Quality))
	default:
		dl = dl.Format(fmt.Sprintf(
			"bestvideo[height<=%d]+bestaudio/best[height<=%d]",
			spec.Quality, spec.Quality)).
			MergeOutputFormat("mp4")
	}

	dl = dl.ProgressFunc(y.ProgressInterval, func(update ytdlp.ProgressUpdate) {
		hook(eventFromUpdate(update))
	})

	if _, err := dl.Run(ctx, spec.URL); err != nil {
		return fmt.Errorf("Error downloading %s: %s", spec.URL, err)
	}
	return nil
}

// eventFromUpdate converts a yt-dlp progress update to a raw Event. The
// percent string is derived from the byte counters since yt-dlp's own
// percent output is consumed by the bindings.
func eventFromUpdate(update ytdlp.ProgressUpdate) Event {
	ev := Event{
		Status:          string(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	if update.TotalBytes > 0 {
		ev.Percent = fmt.Sprintf("%.1f%%",
			float64(update.DownloadedBytes)/float64(update.TotalBytes)*100)
	}

	if update.Info != nil && update.Info.Title != nil {
		ev.Title = *update.Info.Title
	}

	return ev
}
