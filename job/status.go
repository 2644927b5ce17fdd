package job

// Status represents the lifecycle state of the active download job.
// For valid values see constants below.
type Status string

// The available states of a job. A job moves from StatusIdle through
// StatusFetchingMetadata and StatusDownloading (optionally
// StatusPostprocessing) to one of the terminal states StatusFinished and
// StatusError.
const (
	StatusIdle             Status = "idle"
	StatusFetchingMetadata Status = "fetching_metadata"
	StatusDownloading      Status = "downloading"
	StatusPostprocessing   Status = "postprocessing"
	StatusFinished         Status = "finished"
	StatusError            Status = "error"
)

// MarshalBinary is used by the redis driver to marshal the custom type Status
func (s Status) MarshalBinary() (data []byte, err error) {
	return []byte(string(s)), nil
}

// Terminal returns true if s is a state a job cannot leave.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusError
}
