package render

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/claude/wodboard/internal/models"
)

// RenderHeader copies the header fields verbatim.
func RenderHeader(doc *models.ScheduleDocument) Header {
	return Header{
		BoxName:   doc.BoxName,
		Subtitle:  doc.Subtitle,
		WeekDates: doc.WeekDates,
	}
}

// Render builds the card tree for a document. A day with an unparseable
// date aborts the whole render.
func Render(doc *models.ScheduleDocument) (*Tree, error) {
	tree := &Tree{
		Header: RenderHeader(doc),
		Cards:  make([]Card, 0, len(doc.Days)),
	}
	for i, day := range doc.Days {
		card, err := renderDay(day, i)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", day.Name, err)
		}
		tree.Cards = append(tree.Cards, card)
	}
	return tree, nil
}

func renderDay(day models.DayEntry, index int) (Card, error) {
	date, err := FormatDate(day.Date)
	if err != nil {
		return Card{}, err
	}

	card := Card{
		ID:             CardID(index),
		Name:           day.Name,
		Date:           date,
		Festive:        day.IsFestive,
		AnimationDelay: animationDelay(index),
		Sections:       make([]Section, 0, len(day.Sections)),
	}
	if day.IsFestive && day.FestiveBadge != nil && *day.FestiveBadge != "" {
		badge := *day.FestiveBadge
		card.Badge = &badge
	}
	for _, sec := range day.Sections {
		card.Sections = append(card.Sections, renderSection(sec))
	}
	return card, nil
}

func renderSection(sec models.SectionEntry) Section {
	out := Section{Type: sec.Type}
	if sec.Festive != nil {
		notice := *sec.Festive
		out.Festive = &notice
		return out
	}
	w := sec.Workout
	if w == nil {
		w = &models.Workout{}
	}
	out.Workout = &WorkoutBlock{
		Title:          w.Title,
		Badges:         slices.Clone(w.Badges),
		Exercises:      slices.Clone(w.Exercises),
		WorkoutTitle:   w.WorkoutTitle,
		WorkoutDetails: slices.Clone(w.WorkoutDetails),
	}
	return out
}

// CardID is the identifier of the card at a document position.
func CardID(index int) string {
	return "day-" + strconv.Itoa(index)
}

// animationDelay staggers cards by 0.1s per position.
func animationDelay(index int) string {
	return strconv.FormatFloat(float64(index)/10, 'f', -1, 64) + "s"
}
