package domain

import "errors"

// Section is an ordered block of content inside a page. Position sorts
// sections within their page; media items attach to sections.
type Section struct {
	ID       string
	PageID   string
	Title    string
	Content  string
	Position int
}

// Validate validates the section for persistence.
func (s *Section) Validate() error {
	if s.PageID == "" {
		return errors.New("page is required")
	}
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
