package models

import (
	"encoding/json"
	"errors"
	"testing"
)

const sampleJSON = `{
  "boxName": "CrossFit Norte",
  "subtitle": "Planificación semanal",
  "weekDates": "29 dic - 3 ene",
  "days": [
    {
      "name": "Lunes",
      "date": "2025-12-29",
      "isFestive": false,
      "sections": [
        {
          "type": "haltero",
          "title": "Halterofilia",
          "exercises": ["Snatch 5x2", "Clean pull 4x3"]
        },
        {
          "type": "crossfit",
          "title": "CrossFit",
          "badges": [{"type": "strength", "text": "Fuerza"}],
          "workoutTitle": "AMRAP 12'",
          "workoutDetails": ["10 wall balls", "8 burpees"]
        }
      ]
    },
    {
      "name": "Jueves",
      "date": "2026-01-01",
      "isFestive": true,
      "festiveBadge": "Año Nuevo",
      "sections": [
        {
          "type": "crossfit",
          "isFestive": true,
          "icon": "🎉",
          "title": "Cerrado",
          "content": "Feliz año",
          "exercises": ["ignored"]
        }
      ]
    }
  ]
}`

// TestParseScheduleVariants verifies that each section decodes into exactly
// one variant and that festive sections drop normal-mode fields.
func TestParseScheduleVariants(t *testing.T) {
	doc, err := ParseSchedule([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Days) != 2 {
		t.Fatalf("got %d days, want 2", len(doc.Days))
	}

	normal := doc.Days[0].Sections[0]
	if normal.IsFestive() || normal.Workout == nil {
		t.Fatalf("section 0 should be a workout, got %+v", normal)
	}
	if normal.Workout.Badges != nil {
		t.Errorf("absent badges should stay nil, got %v", normal.Workout.Badges)
	}
	if len(normal.Workout.Exercises) != 2 {
		t.Errorf("exercises = %v, want 2 entries", normal.Workout.Exercises)
	}

	festive := doc.Days[1].Sections[0]
	if !festive.IsFestive() || festive.Workout != nil {
		t.Fatalf("festive section should carry only the notice, got %+v", festive)
	}
	if festive.Festive.Title != "Cerrado" {
		t.Errorf("festive title = %q, want %q", festive.Festive.Title, "Cerrado")
	}
	if doc.Days[1].FestiveBadge == nil || *doc.Days[1].FestiveBadge != "Año Nuevo" {
		t.Errorf("festiveBadge not decoded: %v", doc.Days[1].FestiveBadge)
	}
}

// TestParseScheduleEmptyListKept verifies that a present-but-empty list is
// distinguishable from an absent one.
func TestParseScheduleEmptyListKept(t *testing.T) {
	var s SectionEntry
	if err := json.Unmarshal([]byte(`{"type":"x","exercises":[]}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Workout.Exercises == nil {
		t.Error("empty exercises list decoded as nil")
	}
	if s.Workout.WorkoutDetails != nil {
		t.Error("absent workoutDetails decoded as non-nil")
	}
}

// TestParseScheduleFestiveMissingField verifies that a festive section
// without its notice fields is rejected.
func TestParseScheduleFestiveMissingField(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"type":"x","isFestive":true,"title":"t","content":"c"}`, "icon"},
		{`{"type":"x","isFestive":true,"icon":"i","content":"c"}`, "title"},
		{`{"type":"x","isFestive":true,"icon":"i","title":"t"}`, "content"},
	}
	for _, tc := range cases {
		var s SectionEntry
		err := json.Unmarshal([]byte(tc.body), &s)
		var mf *MissingFieldError
		if !errors.As(err, &mf) {
			t.Errorf("%s: err = %v, want MissingFieldError", tc.body, err)
			continue
		}
		if mf.Field != tc.want {
			t.Errorf("%s: field = %q, want %q", tc.body, mf.Field, tc.want)
		}
	}
}

// TestParseScheduleInvalidJSON verifies that malformed input is an error.
func TestParseScheduleInvalidJSON(t *testing.T) {
	if _, err := ParseSchedule([]byte(`{"days": [`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

// TestSectionRoundTrip verifies that re-encoding keeps the published shape,
// so archived weeks decode to the same variants.
func TestSectionRoundTrip(t *testing.T) {
	doc, err := ParseSchedule([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ParseSchedule(data)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}
	if !again.Days[1].Sections[0].IsFestive() {
		t.Error("festive section lost its variant")
	}
	if again.Days[0].Sections[0].Workout.Badges != nil {
		t.Error("absent badges became present after round trip")
	}
}

// TestSectionTypes verifies first-seen ordering and that festive sections
// do not contribute categories.
func TestSectionTypes(t *testing.T) {
	doc, err := ParseSchedule([]byte(sampleJSON))
	if err != nil {
		t.Fatal(err)
	}
	got := doc.SectionTypes()
	want := []string{"haltero", "crossfit"}
	if len(got) != len(want) {
		t.Fatalf("SectionTypes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SectionTypes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !doc.HasFestiveDay() {
		t.Error("HasFestiveDay() = false, want true")
	}
}
