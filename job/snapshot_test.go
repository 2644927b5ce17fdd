package job

import (
	"encoding/json"
	"testing"
)

func TestSnapshotMarshalJSON(t *testing.T) {
	tc := []struct {
		snap     Snapshot
		expected string
	}{
		{
			Snapshot{},
			`{"progress":"0.0%","current":0,"total":0,"status":"idle"}`,
		},
		{
			Snapshot{Percent: 55.5, Current: 0, Total: 1, Title: "clip",
				Status: StatusDownloading},
			`{"progress":"55.5%","current":0,"total":1,"title":"clip","status":"downloading"}`,
		},
		{
			Snapshot{Percent: 100, Current: 3, Total: 3, Status: StatusFinished},
			`{"progress":"100.0%","current":3,"total":3,"status":"finished"}`,
		},
		{
			Snapshot{Percent: 12.34, Current: 0, Total: 1, Status: StatusError,
				Err: "network timeout"},
			`{"progress":"12.3%","current":0,"total":1,"status":"error","error":"network timeout"}`,
		},
	}

	for _, c := range tc {
		b, err := json.Marshal(c.snap)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != c.expected {
			t.Errorf("Expected %s, got %s", c.expected, b)
		}
	}
}

func TestSnapshotUnmarshalJSON(t *testing.T) {
	in := `{"progress":"42.0%","current":1,"total":3,"title":"clip","status":"downloading"}`

	var s Snapshot
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatal(err)
	}

	expected := Snapshot{Percent: 42, Current: 1, Total: 3, Title: "clip",
		Status: StatusDownloading}
	if s != expected {
		t.Errorf("Expected %s, got %s", expected, s)
	}
}

func TestStatusTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusIdle:             false,
		StatusFetchingMetadata: false,
		StatusDownloading:      false,
		StatusPostprocessing:   false,
		StatusFinished:         true,
		StatusError:            true,
	}

	for status, expected := range terminal {
		if status.Terminal() != expected {
			t.Errorf("Expected %s.Terminal() to be %v", status, expected)
		}
	}
}
