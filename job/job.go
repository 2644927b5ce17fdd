package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Kind denotes what should be extracted out of the target media.
type Kind string

// The supported download kinds. KindVideo fetches the best audio/video
// streams bound by the requested height and muxes them. KindAudio fetches the
// best audio stream and transcodes it to mp3 at the requested bitrate.
const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// The valid quality selectors per kind. For video the quality is a frame
// height, for audio an mp3 bitrate in kbit/s.
var (
	videoQualities = map[int]bool{360: true, 720: true, 1080: true}
	audioQualities = map[int]bool{160: true, 256: true, 320: true}
)

// Job represents a user request for downloading a media resource.
//
// It is the core entity of the service. Only one Job is active at any time;
// submitting a new one supersedes the previous.
type Job struct {
	// Auto-generated
	ID string `json:"id"`

	// The URL pointing to the media to be downloaded. May resolve to a
	// playlist with multiple items.
	URL string `json:"url"`

	Kind Kind `json:"download_type"`

	// Quality selector, semantics depend on Kind.
	Quality int `json:"quality"`

	CreatedAt time.Time `json:"-"`
}

// UnmarshalJSON is used to populate a job from the values in
// the provided JSON message.
func (j *Job) UnmarshalJSON(b []byte) error {
	var tmp map[string]interface{}

	err := json.Unmarshal(b, &tmp)
	if err != nil {
		return err
	}

	dlURL, ok := tmp["url"].(string)
	if !ok || dlURL == "" {
		return errors.New("url must be a non-empty string")
	}
	_, err = url.ParseRequestURI(dlURL)
	if err != nil {
		return errors.New("Could not parse URL: " + err.Error())
	}
	j.URL = dlURL

	kind := string(KindVideo)
	if k, ok := tmp["download_type"]; ok {
		kind, ok = k.(string)
		if !ok {
			return errors.New("download_type must be a string")
		}
	}

	var quality int
	if q, ok := tmp["quality"]; ok {
		switch v := q.(type) {
		case float64:
			quality = int(v)
		case json.Number:
			n, err := v.Int64()
			if err != nil {
				return errors.New("quality must be an integer")
			}
			quality = int(n)
		case string:
			quality, err = strconv.Atoi(v)
			if err != nil {
				return errors.New("quality must be an integer")
			}
		default:
			return fmt.Errorf("quality must be a number, was: %T", q)
		}
	}

	return j.setKindQuality(kind, quality)
}

// ParseForm populates a job from HTML form values, applying the same
// validations as UnmarshalJSON.
func (j *Job) ParseForm(get func(string) string) error {
	dlURL := get("url")
	if dlURL == "" {
		return errors.New("url must be a non-empty string")
	}
	if _, err := url.ParseRequestURI(dlURL); err != nil {
		return errors.New("Could not parse URL: " + err.Error())
	}
	j.URL = dlURL

	kind := get("download_type")
	if kind == "" {
		kind = string(KindVideo)
	}

	var quality int
	if q := get("quality"); q != "" {
		var err error
		quality, err = strconv.Atoi(q)
		if err != nil {
			return errors.New("quality must be an integer")
		}
	}

	return j.setKindQuality(kind, quality)
}

// setKindQuality validates kind and quality together, since the valid
// quality values depend on the kind. A zero quality selects the default
// for the kind.
func (j *Job) setKindQuality(kind string, quality int) error {
	switch Kind(kind) {
	case KindVideo:
		if quality == 0 {
			quality = 720
		}
		if !videoQualities[quality] {
			return fmt.Errorf("Invalid video quality: %d", quality)
		}
	case KindAudio:
		if quality == 0 {
			quality = 256
		}
		if !audioQualities[quality] {
			return fmt.Errorf("Invalid audio quality: %d", quality)
		}
	default:
		return fmt.Errorf("Invalid download_type: %q", kind)
	}

	j.Kind = Kind(kind)
	j.Quality = quality
	return nil
}

func (j Job) String() string {
	return fmt.Sprintf("Job{ID:%s, URL:%s, Kind:%s, Quality:%d}",
		j.ID, j.URL, j.Kind, j.Quality)
}
