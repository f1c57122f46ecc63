package source

import (
	"context"
	"os"

	"github.com/claude/wodboard/internal/models"
)

// File reads the document from a path on disk on every Load, so swapping
// the file publishes a new week without a restart.
type File struct {
	Path string
}

// Load implements Source.
func (f File) Load(_ context.Context) (*models.ScheduleDocument, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, &FetchError{Location: f.Path, Err: err}
	}
	return decode(f.Path, data)
}
