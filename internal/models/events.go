package models

// JobCompletedEvent announces a successfully analyzed meeting.
type JobCompletedEvent struct {
	EventType       string  `json:"eventType"`
	JobID           string  `json:"jobId"`
	Timestamp       int64   `json:"timestamp"`
	Topic           string  `json:"topic"`
	SpeakerCount    int     `json:"speakerCount"`
	TotalSpeechTime float64 `json:"totalSpeechTime"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// JobFailedEvent announces a job that ended in a pipeline failure.
type JobFailedEvent struct {
	EventType       string  `json:"eventType"`
	JobID           string  `json:"jobId"`
	Timestamp       int64   `json:"timestamp"`
	Error           string  `json:"error"`
	DurationSeconds float64 `json:"durationSeconds"`
}
