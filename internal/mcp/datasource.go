package mcp

import (
	"context"
	"errors"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/source"
)

// ErrNoArchive is returned for week lookups when no archive is configured.
var ErrNoArchive = errors.New("week archive not configured")

// DataSource abstracts where MCP tools read schedules from. Local reads the
// configured source directly; HTTPClient goes through a remote server's
// REST API.
type DataSource interface {
	// Schedule returns the named archived week, or the current week when
	// week is empty.
	Schedule(ctx context.Context, week string) (*models.ScheduleDocument, error)
	ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error)
}

// Local serves schedules from an in-process source and optional archive.
type Local struct {
	Source  source.Source
	Archive source.Archive
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = Local{}

func (l Local) Schedule(ctx context.Context, week string) (*models.ScheduleDocument, error) {
	if week == "" {
		return l.Source.Load(ctx)
	}
	if l.Archive == nil {
		return nil, ErrNoArchive
	}
	return source.Week{Archive: l.Archive, Slug: week}.Load(ctx)
}

func (l Local) ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error) {
	if l.Archive == nil {
		return nil, ErrNoArchive
	}
	return l.Archive.ListWeeks(ctx, limit)
}
