package render

import "github.com/claude/wodboard/internal/models"

// Tree is the rendered page content, independent of any markup surface.
type Tree struct {
	Header Header
	Cards  []Card
}

// Header holds the three text fields shown above the grid.
type Header struct {
	BoxName   string
	Subtitle  string
	WeekDates string
}

// Card is one day. ID is stable for a given position in the document.
type Card struct {
	ID             string
	Name           string
	Date           string
	Festive        bool
	Badge          *string
	AnimationDelay string
	Sections       []Section
}

// Section is a rendered section; exactly one of Festive or Workout is set.
type Section struct {
	Type    string
	Festive *models.FestiveNotice
	Workout *WorkoutBlock
}

// WorkoutBlock carries the optional parts of a normal section in render
// order. Nil fields are not rendered.
type WorkoutBlock struct {
	Title          *string
	Badges         []models.Badge
	Exercises      []string
	WorkoutTitle   *string
	WorkoutDetails []string
}

// HasNormalSection reports whether the card has a non-festive section of
// the given type.
func (c Card) HasNormalSection(sectionType string) bool {
	for _, s := range c.Sections {
		if s.Festive == nil && s.Type == sectionType {
			return true
		}
	}
	return false
}
