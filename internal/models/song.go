package models

// Song describes a resolved audio asset referenced by levels.
type Song struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Extension   string `json:"extension"`
}

// FileName is the attachment name used when proxying the audio.
func (s Song) FileName() string {
	return s.Name + "." + s.Extension
}
