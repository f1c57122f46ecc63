package filter

import (
	"testing"

	"github.com/claude/wodboard/internal/models"
)

func barDocument() *models.ScheduleDocument {
	return &models.ScheduleDocument{
		Days: []models.DayEntry{
			{Sections: []models.SectionEntry{{Type: "haltero", Workout: &models.Workout{}}, {Type: "crossfit", Workout: &models.Workout{}}}},
			{IsFestive: true, Sections: []models.SectionEntry{{Type: "navidad", Festive: &models.FestiveNotice{}}}},
			{Sections: []models.SectionEntry{{Type: "crossfit", Workout: &models.Workout{}}, {Type: "endurance", Workout: &models.Workout{}}}},
		},
	}
}

func activeCount(b *Bar) int {
	n := 0
	for _, c := range b.Controls {
		if c.Active {
			n++
		}
	}
	return n
}

// TestNewBar verifies control order, labels and the initial active control.
func TestNewBar(t *testing.T) {
	b := NewBar(barDocument(), map[string]string{"haltero": "Halterofilia"})
	want := []string{All, "haltero", "crossfit", "endurance", Festive}
	if len(b.Controls) != len(want) {
		t.Fatalf("controls = %+v, want categories %v", b.Controls, want)
	}
	for i, c := range want {
		if b.Controls[i].Category != c {
			t.Errorf("control %d = %q, want %q", i, b.Controls[i].Category, c)
		}
	}
	if b.Controls[1].Label != "Halterofilia" {
		t.Errorf("label = %q, want Halterofilia", b.Controls[1].Label)
	}
	if b.Controls[2].Label != "crossfit" {
		t.Errorf("default label = %q, want crossfit", b.Controls[2].Label)
	}
	if b.Active() != All || activeCount(b) != 1 {
		t.Errorf("initial active = %q (%d active), want all", b.Active(), activeCount(b))
	}
}

// TestBarSelectLastWins verifies exactly one control stays active.
func TestBarSelectLastWins(t *testing.T) {
	b := NewBar(barDocument(), nil)
	for _, c := range []string{"crossfit", Festive, "haltero"} {
		b.Select(c)
		if activeCount(b) != 1 {
			t.Errorf("after Select(%q): %d active controls", c, activeCount(b))
		}
		if b.Active() != c {
			t.Errorf("Active() = %q, want %q", b.Active(), c)
		}
	}
}

// TestBarSelectUnknown verifies an unknown category gets its own control.
func TestBarSelectUnknown(t *testing.T) {
	b := NewBar(barDocument(), nil)
	n := len(b.Controls)
	b.Select("yoga")
	if len(b.Controls) != n+1 {
		t.Fatalf("controls = %d, want %d", len(b.Controls), n+1)
	}
	if b.Active() != "yoga" || activeCount(b) != 1 {
		t.Errorf("active = %q (%d active), want yoga", b.Active(), activeCount(b))
	}
	b.Select("yoga")
	if len(b.Controls) != n+1 {
		t.Error("selecting the same unknown category twice added another control")
	}
}

// TestNewBarNoFestive verifies festivo is only offered when a festive day exists.
func TestNewBarNoFestive(t *testing.T) {
	doc := &models.ScheduleDocument{Days: []models.DayEntry{{Sections: []models.SectionEntry{{Type: "crossfit", Workout: &models.Workout{}}}}}}
	b := NewBar(doc, nil)
	for _, c := range b.Controls {
		if c.Category == Festive {
			t.Error("festivo control present without festive days")
		}
	}
}
