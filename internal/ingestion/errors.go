package ingestion

import "errors"

var (
	// ErrIngestionFailed covers unreadable, oversized, or wrong-format uploads.
	ErrIngestionFailed = errors.New("resume ingestion failed")
	// ErrAnalysisFailed is returned when skill extraction fails or the model
	// response does not match the expected schema.
	ErrAnalysisFailed = errors.New("resume analysis failed")
	// ErrNoResume is returned when no resume data is on record for the user.
	ErrNoResume = errors.New("no resume on record")
)
