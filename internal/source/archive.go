package source

import (
	"context"

	"github.com/claude/wodboard/internal/models"
)

// Archive is the published-weeks store. *storage.DB satisfies it.
type Archive interface {
	GetWeek(ctx context.Context, slug string) (*models.WeekRow, error)
	GetLatestWeek(ctx context.Context) (*models.WeekRow, error)
	ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error)
	UpsertWeek(ctx context.Context, row models.WeekRow) (*models.WeekRow, error)
}

// Week loads an archived week. An empty Slug means the most recently
// published week.
type Week struct {
	Archive Archive
	Slug    string
}

// Load implements Source.
func (w Week) Load(ctx context.Context) (*models.ScheduleDocument, error) {
	location := "archive:" + w.Slug
	var (
		row *models.WeekRow
		err error
	)
	if w.Slug == "" {
		location = "archive:latest"
		row, err = w.Archive.GetLatestWeek(ctx)
	} else {
		row, err = w.Archive.GetWeek(ctx, w.Slug)
	}
	if err != nil {
		return nil, &FetchError{Location: location, Err: err}
	}
	return decode(location, row.Document)
}
