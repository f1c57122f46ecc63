package models

import (
	"encoding/json"
	"fmt"
)

// ScheduleDocument is the weekly schedule as published by the box.
type ScheduleDocument struct {
	BoxName   string     `json:"boxName"`
	Subtitle  string     `json:"subtitle"`
	WeekDates string     `json:"weekDates"`
	Days      []DayEntry `json:"days"`
}

// DayEntry is one day card. Date is YYYY-MM-DD.
type DayEntry struct {
	Name         string         `json:"name"`
	Date         string         `json:"date"`
	IsFestive    bool           `json:"isFestive"`
	FestiveBadge *string        `json:"festiveBadge,omitempty"`
	Sections     []SectionEntry `json:"sections"`
}

// Badge is a short labeled WOD tag, e.g. {type: "strength", text: "Fuerza"}.
type Badge struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// FestiveNotice replaces a section's workout on holidays.
type FestiveNotice struct {
	Icon    string
	Title   string
	Content string
}

// Workout is the normal section body. Every field is optional: nil means
// absent, a non-nil empty slice means present but empty.
type Workout struct {
	Title          *string
	Badges         []Badge
	Exercises      []string
	WorkoutTitle   *string
	WorkoutDetails []string
}

// SectionEntry holds exactly one of Festive or Workout.
type SectionEntry struct {
	Type    string
	Festive *FestiveNotice
	Workout *Workout
}

// IsFestive reports whether the section renders as a holiday notice.
func (s SectionEntry) IsFestive() bool {
	return s.Festive != nil
}

// sectionWire is the JSON shape of a section before variant selection.
type sectionWire struct {
	Type           string   `json:"type"`
	IsFestive      bool     `json:"isFestive"`
	Icon           *string  `json:"icon,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Content        *string  `json:"content,omitempty"`
	Badges         []Badge  `json:"badges"`
	Exercises      []string `json:"exercises"`
	WorkoutTitle   *string  `json:"workoutTitle,omitempty"`
	WorkoutDetails []string `json:"workoutDetails"`
}

// MissingFieldError reports a festive section without its notice fields.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("festive section missing %q", e.Field)
}

// UnmarshalJSON selects the section variant from isFestive. Normal-mode
// fields on a festive section are dropped.
func (s *SectionEntry) UnmarshalJSON(data []byte) error {
	var w sectionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*s = SectionEntry{Type: w.Type}
	if w.IsFestive {
		switch {
		case w.Icon == nil:
			return &MissingFieldError{Field: "icon"}
		case w.Title == nil:
			return &MissingFieldError{Field: "title"}
		case w.Content == nil:
			return &MissingFieldError{Field: "content"}
		}
		s.Festive = &FestiveNotice{Icon: *w.Icon, Title: *w.Title, Content: *w.Content}
		return nil
	}

	s.Workout = &Workout{
		Title:          w.Title,
		Badges:         w.Badges,
		Exercises:      w.Exercises,
		WorkoutTitle:   w.WorkoutTitle,
		WorkoutDetails: w.WorkoutDetails,
	}
	return nil
}

// MarshalJSON writes the section back in its published shape.
func (s SectionEntry) MarshalJSON() ([]byte, error) {
	w := sectionWire{Type: s.Type}
	switch {
	case s.Festive != nil:
		w.IsFestive = true
		w.Icon = &s.Festive.Icon
		w.Title = &s.Festive.Title
		w.Content = &s.Festive.Content
	case s.Workout != nil:
		w.Title = s.Workout.Title
		w.Badges = s.Workout.Badges
		w.Exercises = s.Workout.Exercises
		w.WorkoutTitle = s.Workout.WorkoutTitle
		w.WorkoutDetails = s.Workout.WorkoutDetails
	}
	return json.Marshal(w)
}

// ParseSchedule decodes a schedule document.
func ParseSchedule(data []byte) (*ScheduleDocument, error) {
	var doc ScheduleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// SectionTypes returns the distinct types of non-festive sections in
// first-seen order.
func (d *ScheduleDocument) SectionTypes() []string {
	seen := map[string]bool{}
	var types []string
	for _, day := range d.Days {
		for _, sec := range day.Sections {
			if sec.IsFestive() || sec.Type == "" || seen[sec.Type] {
				continue
			}
			seen[sec.Type] = true
			types = append(types, sec.Type)
		}
	}
	return types
}

// HasFestiveDay reports whether any day is a holiday variant.
func (d *ScheduleDocument) HasFestiveDay() bool {
	for _, day := range d.Days {
		if day.IsFestive {
			return true
		}
	}
	return false
}
