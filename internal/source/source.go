// Package source loads schedule documents from where they are published.
package source

import (
	"context"
	"fmt"

	"github.com/claude/wodboard/internal/models"
)

// Source loads the schedule document for one page view.
type Source interface {
	Load(ctx context.Context) (*models.ScheduleDocument, error)
}

// FetchError reports that the document could not be reached.
type FetchError struct {
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Location, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError reports that the document was reached but is not a valid
// schedule document.
type ParseError struct {
	Location string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Location, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// decode parses body, tagging failures with location.
func decode(location string, body []byte) (*models.ScheduleDocument, error) {
	doc, err := models.ParseSchedule(body)
	if err != nil {
		return nil, &ParseError{Location: location, Err: err}
	}
	return doc, nil
}
