package ingestion

// ResumeData is the structured extraction produced from the first page of an
// uploaded resume. One instance exists per user; a re-upload overwrites it.
type ResumeData struct {
	Name       string   `json:"name"`
	Skills     []string `json:"skills"`
	Experience []string `json:"experience"`
}
