package domain

import "errors"

// Type classifies a media item.
type Type string

const (
	TypeImage Type = "image"
	TypeText  Type = "text"
)

// Valid reports whether t is a known media type.
func (t Type) Valid() bool {
	return t == TypeImage || t == TypeText
}

// Media is a file or text asset attached to a section. SectionID may be empty
// for assets uploaded before being placed.
type Media struct {
	ID         string
	SectionID  string
	UploaderID string
	FileURL    string
	AltText    string
	Type       Type
}

// Validate validates the media item for persistence.
func (m *Media) Validate() error {
	if m.FileURL == "" {
		return errors.New("file url is required")
	}
	if m.UploaderID == "" {
		return errors.New("uploader is required")
	}
	if m.Type == "" {
		m.Type = TypeImage
	}
	if !m.Type.Valid() {
		return errors.New("type must be image or text")
	}
	return nil
}
