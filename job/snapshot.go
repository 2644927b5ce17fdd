package job

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is the progress record exposed to pollers.
//
// A Snapshot is a value type and is only ever replaced wholesale, never
// mutated in place, so a reader can never observe a mix of old and new
// fields.
type Snapshot struct {
	// Percent is the current item's completion in [0, 100].
	Percent float64

	// Current and Total mirror the completed and total item counts of the
	// job. Total is 1 for single-item jobs.
	Current int
	Total   int

	// Title of the item currently downloading, best-effort.
	Title string

	Status Status

	// Err carries a human-readable message when Status is StatusError.
	Err string
}

// jsonSnapshot is the wire form served by GET /progress. The percent is
// serialized as a string like "42.0%".
type jsonSnapshot struct {
	Progress string `json:"progress"`
	Current  int    `json:"current"`
	Total    int    `json:"total"`
	Title    string `json:"title,omitempty"`
	Status   Status `json:"status"`
	Error    string `json:"error,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	status := s.Status
	if status == "" {
		status = StatusIdle
	}
	return json.Marshal(jsonSnapshot{
		Progress: fmt.Sprintf("%.1f%%", s.Percent),
		Current:  s.Current,
		Total:    s.Total,
		Title:    s.Title,
		Status:   status,
		Error:    s.Err,
	})
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the wire form
// produced by MarshalJSON.
func (s *Snapshot) UnmarshalJSON(b []byte) error {
	var tmp jsonSnapshot
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}

	percent, err := strconv.ParseFloat(strings.TrimSuffix(tmp.Progress, "%"), 64)
	if err != nil {
		percent = 0
	}

	*s = Snapshot{
		Percent: percent,
		Current: tmp.Current,
		Total:   tmp.Total,
		Title:   tmp.Title,
		Status:  tmp.Status,
		Err:     tmp.Error,
	}
	return nil
}

func (s Snapshot) String() string {
	return fmt.Sprintf("Snapshot{%.1f%%, %d/%d, %s, title:%q}",
		s.Percent, s.Current, s.Total, s.Status, s.Title)
}
