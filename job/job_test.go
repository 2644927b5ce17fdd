package job

import (
	"fmt"
	"testing"
)

func TestUnmarshalJSON(t *testing.T) {
	tc := map[string]bool{
		``:              true,
		`{"foo"}`:       true,
		`{"foo":"bar"}`: true,

		// invalid url
		`{"url":""}`:       true,
		`{"url":"foo"}`:    true,
		`{"url":42}`:       true,
		`{"quality":720}`:  true,

		// valid, defaults applied
		`{"url":"https://youtube.com/watch?v=abc"}`: false,

		// download_type
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video"}`: false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"audio"}`: false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"both"}`:  true,
		`{"url":"https://youtube.com/watch?v=abc","download_type":42}`:      true,

		// video quality
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":360}`:   false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":1080}`:  false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":"720"}`: false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":480}`:   true,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":320}`:   true,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"video","quality":"x"}`:   true,

		// audio quality
		`{"url":"https://youtube.com/watch?v=abc","download_type":"audio","quality":320}`: false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"audio","quality":160}`: false,
		`{"url":"https://youtube.com/watch?v=abc","download_type":"audio","quality":720}`: true,
	}

	for data, expectErr := range tc {
		j := new(Job)
		err := j.UnmarshalJSON([]byte(data))
		receivedErr := (err != nil)
		if receivedErr != expectErr {
			if err != nil {
				fmt.Println(err)
			}
			t.Errorf("Expected receivedErr to be %v for '%s'", expectErr, data)
		}
	}
}

func TestUnmarshalJSONDefaults(t *testing.T) {
	j := new(Job)
	err := j.UnmarshalJSON([]byte(`{"url":"https://youtube.com/watch?v=abc"}`))
	if err != nil {
		t.Fatal(err)
	}
	if j.Kind != KindVideo {
		t.Errorf("Expected default kind video, got %s", j.Kind)
	}
	if j.Quality != 720 {
		t.Errorf("Expected default video quality 720, got %d", j.Quality)
	}

	j = new(Job)
	err = j.UnmarshalJSON([]byte(`{"url":"https://youtube.com/watch?v=abc","download_type":"audio"}`))
	if err != nil {
		t.Fatal(err)
	}
	if j.Quality != 256 {
		t.Errorf("Expected default audio quality 256, got %d", j.Quality)
	}
}

func TestParseForm(t *testing.T) {
	tc := map[string]struct {
		form      map[string]string
		expectErr bool
	}{
		"valid video": {map[string]string{
			"url": "https://youtube.com/watch?v=abc", "download_type": "video",
			"quality": "1080"}, false},
		"valid audio": {map[string]string{
			"url": "https://youtube.com/watch?v=abc", "download_type": "audio",
			"quality": "320"}, false},
		"defaults":    {map[string]string{"url": "https://youtube.com/watch?v=abc"}, false},
		"missing url": {map[string]string{"download_type": "video"}, true},
		"bad url":     {map[string]string{"url": "nope"}, true},
		"bad quality": {map[string]string{
			"url": "https://youtube.com/watch?v=abc", "quality": "high"}, true},
		"mismatched quality": {map[string]string{
			"url": "https://youtube.com/watch?v=abc", "download_type": "audio",
			"quality": "720"}, true},
	}

	for name, c := range tc {
		j := new(Job)
		err := j.ParseForm(func(k string) string { return c.form[k] })
		if (err != nil) != c.expectErr {
			t.Errorf("%s: expected error to be %v, got %v", name, c.expectErr, err)
		}
	}
}

func TestJobToString(t *testing.T) {
	testJob := Job{ID: "a1", URL: "https://example.com/v", Kind: KindAudio, Quality: 320}
	res := testJob.String()
	expected := "Job{ID:a1, URL:https://example.com/v, Kind:audio, Quality:320}"

	if res != expected {
		t.Errorf("Expected '%s', got '%s'", expected, res)
	}
}
