package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// DefaultOutputTemplate is the engine-native filename template used when
// the config does not provide one.
const DefaultOutputTemplate = "%(title)s.%(ext)s"

// Config holds the app's configuration
type Config struct {
	API struct {
		HeartbeatPath string `json:"heartbeat_path"`
	} `json:"api"`

	Media struct {
		// VideoDir and AudioDir are where downloaded files are
		// written, depending on the download kind.
		VideoDir string `json:"video_dir"`
		AudioDir string `json:"audio_dir"`

		OutputTemplate string `json:"output_template"`

		// DiskHigh and DiskLow are the disk usage percentages at which
		// job submission is suspended and resumed respectively.
		DiskHigh int `json:"disk_high"`
		DiskLow  int `json:"disk_low"`
	} `json:"media"`

	Engine struct {
		// ProgressInterval is the progress flush interval in
		// milliseconds.
		ProgressInterval int `json:"progress_interval_ms"`
	} `json:"engine"`

	// Redis is optional. When Addr is empty the server runs without the
	// job history store.
	Redis struct {
		Addr string `json:"addr"`
	} `json:"redis"`

	// Notifier is optional. When Destination is empty no completion
	// notifications are delivered.
	Notifier struct {
		// Backend is one of "http", "kafka", "sqs". Empty selects http.
		Backend string `json:"backend"`

		// Destination semantics depend on Backend: a callback URL,
		// a Kafka topic or an SQS queue URL.
		Destination string `json:"destination"`

		// Options are passed verbatim to the backend.
		Options map[string]interface{} `json:"options"`
	} `json:"notifier"`
}

// Parse loads a given file name and creates a Configuration
func Parse(filename string) (Config, error) {
	cfg := Config{}
	f, err := os.Open(filename)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if c.Media.VideoDir == "" {
		c.Media.VideoDir = filepath.Join(home, "Music")
	}
	if c.Media.AudioDir == "" {
		c.Media.AudioDir = filepath.Join(home, "Music", "YT-Downloader")
	}
	if c.Media.OutputTemplate == "" {
		c.Media.OutputTemplate = DefaultOutputTemplate
	}
	if c.Media.DiskHigh == 0 {
		c.Media.DiskHigh = 95
	}
	if c.Media.DiskLow == 0 {
		c.Media.DiskLow = 90
	}
}
