package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// WeekRow is a published week in the schedule_weeks table.
type WeekRow struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	BoxName     string    `json:"box_name"`
	WeekDates   string    `json:"week_dates"`
	Document    []byte    `json:"-"`
	ContentHash string    `json:"content_hash"`
	PublishedAt time.Time `json:"published_at"`
}

// WeekSummary is a WeekRow without its document, for listings.
type WeekSummary struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	BoxName     string    `json:"box_name"`
	WeekDates   string    `json:"week_dates"`
	PublishedAt time.Time `json:"published_at"`
}

// NewWeekRow builds the archive row for a decoded document and the raw
// bytes it came from. The content hash is the hex SHA-256 of data.
func NewWeekRow(slug string, data []byte, doc *ScheduleDocument) WeekRow {
	sum := sha256.Sum256(data)
	return WeekRow{
		Slug:        slug,
		BoxName:     doc.BoxName,
		WeekDates:   doc.WeekDates,
		Document:    data,
		ContentHash: hex.EncodeToString(sum[:]),
	}
}
