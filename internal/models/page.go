package models

// PageRecord is one not-yet-submitted page image inside a capture session.
// The id is assigned at capture time and never reused.
type PageRecord struct {
	ID          string
	ImageBytes  []byte
	DisplayName string
}
