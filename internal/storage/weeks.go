package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/wodboard/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrWeekNotFound is returned when no published week matches.
var ErrWeekNotFound = errors.New("week not found")

// UpsertWeek publishes a week document under its slug. Republishing a slug
// replaces the document and bumps published_at; the ID is kept.
func (db *DB) UpsertWeek(ctx context.Context, row models.WeekRow) (*models.WeekRow, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO schedule_weeks (id, slug, box_name, week_dates, document, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (slug) DO UPDATE
			SET box_name = EXCLUDED.box_name,
			    week_dates = EXCLUDED.week_dates,
			    document = EXCLUDED.document,
			    content_hash = EXCLUDED.content_hash,
			    published_at = NOW()
		 RETURNING id, published_at`,
		row.ID, row.Slug, row.BoxName, row.WeekDates, row.Document, row.ContentHash,
	).Scan(&row.ID, &row.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("upserting week %s: %w", row.Slug, err)
	}
	return &row, nil
}

// GetWeek retrieves a published week by slug.
func (db *DB) GetWeek(ctx context.Context, slug string) (*models.WeekRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, slug, box_name, week_dates, document, content_hash, published_at
		 FROM schedule_weeks
		 WHERE slug = $1`,
		slug)
	return scanWeek(row, slug)
}

// GetLatestWeek retrieves the most recently published week.
func (db *DB) GetLatestWeek(ctx context.Context) (*models.WeekRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, slug, box_name, week_dates, document, content_hash, published_at
		 FROM schedule_weeks
		 ORDER BY published_at DESC
		 LIMIT 1`)
	return scanWeek(row, "latest")
}

func scanWeek(row pgx.Row, label string) (*models.WeekRow, error) {
	var w models.WeekRow
	err := row.Scan(&w.ID, &w.Slug, &w.BoxName, &w.WeekDates, &w.Document, &w.ContentHash, &w.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("week %s: %w", label, ErrWeekNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying week %s: %w", label, err)
	}
	return &w, nil
}

// ListWeeks returns published weeks, newest first.
func (db *DB) ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error) {
	if limit <= 0 {
		limit = 52
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, slug, box_name, week_dates, published_at
		 FROM schedule_weeks
		 ORDER BY published_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying weeks: %w", err)
	}
	defer rows.Close()

	var result []models.WeekSummary
	for rows.Next() {
		var w models.WeekSummary
		if err := rows.Scan(&w.ID, &w.Slug, &w.BoxName, &w.WeekDates, &w.PublishedAt); err != nil {
			return nil, fmt.Errorf("scanning week: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
