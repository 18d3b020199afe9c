package pipeline

import "time"

// Status classifies the result of handling one filesystem event.
type Status string

const (
	// StatusSuccess means a transcript artifact was written.
	StatusSuccess Status = "success"
	// StatusIgnored means the file's extension is not in the allow-set; no
	// transcription call was made.
	StatusIgnored Status = "ignored"
	// StatusError means the read, the transcription call, or the write
	// failed. The detail carries the reason.
	StatusError Status = "error"
)

// Outcome is the per-file processing record. It is reported and journaled,
// then discarded; nothing replays from it.
type Outcome struct {
	ID             string
	Path           string
	Status         Status
	Detail         string
	TranscriptPath string
	Bytes          int64
	Duration       time.Duration
	CompletedAt    time.Time
}
