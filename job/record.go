package job

import (
	"encoding/json"
	"time"
)

// Record holds the outcome of a terminated job. Records are what gets
// persisted to the history store and posted to the notification callback.
type Record struct {
	JobID string `json:"job_id"`

	// URL of the requested media resource
	URL string `json:"url"`

	Kind    Kind `json:"download_type"`
	Quality int  `json:"quality"`

	// Title of the (last) downloaded item, best-effort
	Title string `json:"title,omitempty"`

	// Status is either StatusFinished or StatusError
	Status Status `json:"status"`

	// Items downloaded out of ItemsTotal
	Items      int `json:"items"`
	ItemsTotal int `json:"items_total"`

	// Error contains the failure message for errored jobs
	Error string `json:"error,omitempty"`

	FinishedAt time.Time `json:"finished_at"`
}

// NewRecord builds a Record out of a job and its final snapshot.
func NewRecord(j *Job, s Snapshot) Record {
	return Record{
		JobID:      j.ID,
		URL:        j.URL,
		Kind:       j.Kind,
		Quality:    j.Quality,
		Title:      s.Title,
		Status:     s.Status,
		Items:      s.Current,
		ItemsTotal: s.Total,
		Error:      s.Err,
		FinishedAt: time.Now(),
	}
}

// Bytes returns a byte slice for a record encoded as JSON
func (r *Record) Bytes() ([]byte, error) {
	return json.Marshal(r)
}
