package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/source"
	"github.com/mark3labs/mcp-go/mcp"
)

const testWeek = `{
	"boxName": "Box",
	"weekDates": "29 dic - 3 ene",
	"days": [
		{"name": "Lunes", "date": "2025-12-29", "sections": [
			{"type": "crossfit", "title": "WOD"},
			{"type": "gimnasticos", "title": "Skills"}
		]},
		{"name": "Jueves", "date": "2026-01-01", "isFestive": true, "sections": [
			{"type": "crossfit", "isFestive": true, "icon": "🎉", "title": "Cerrado", "content": "Feliz año"}
		]},
		{"name": "Viernes", "date": "2026-01-02", "sections": [
			{"type": "crossfit", "title": "WOD"}
		]}
	]
}`

// fakeSource serves one document per week slug; "" is the current week.
type fakeSource struct {
	weeks map[string]string
	list  []models.WeekSummary
}

func (f fakeSource) Schedule(ctx context.Context, week string) (*models.ScheduleDocument, error) {
	body, ok := f.weeks[week]
	if !ok {
		return nil, &source.FetchError{Location: "archive:" + week, Err: errors.New("week not found")}
	}
	return models.ParseSchedule([]byte(body))
}

func (f fakeSource) ListWeeks(ctx context.Context, limit int) ([]models.WeekSummary, error) {
	if limit > 0 && limit < len(f.list) {
		return f.list[:limit], nil
	}
	return f.list, nil
}

func newHandlers(ds DataSource) *handlers {
	return &handlers{
		ds:     ds,
		labels: map[string]string{"all": "Todos"},
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// resultText returns the text of the first content item.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("content type %T, want text", res.Content[0])
	return ""
}

// TestFilterDays verifies the tool returns only the days matching the
// category, with formatted dates and section types.
func TestFilterDays(t *testing.T) {
	h := newHandlers(fakeSource{weeks: map[string]string{"": testWeek}})

	tests := []struct {
		category string
		want     []string
	}{
		{"all", []string{"day-0", "day-1", "day-2"}},
		{"crossfit", []string{"day-0", "day-2"}},
		{"gimnasticos", []string{"day-0"}},
		{"festivo", []string{"day-1"}},
		{"yoga", nil},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			res, err := h.filterDays(context.Background(), callRequest(map[string]any{"category": tt.category}))
			if err != nil {
				t.Fatal(err)
			}
			if res.IsError {
				t.Fatalf("tool error: %s", resultText(t, res))
			}
			var out struct {
				Category string     `json:"category"`
				Days     []DayMatch `json:"days"`
			}
			if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			var ids []string
			for _, d := range out.Days {
				ids = append(ids, d.ID)
			}
			if len(ids) != len(tt.want) {
				t.Fatalf("ids = %v, want %v", ids, tt.want)
			}
			for i := range ids {
				if ids[i] != tt.want[i] {
					t.Errorf("ids[%d] = %q, want %q", i, ids[i], tt.want[i])
				}
			}
		})
	}
}

// TestFilterDaysFormatsDates verifies dates come back in D/M/YYYY form.
func TestFilterDaysFormatsDates(t *testing.T) {
	h := newHandlers(fakeSource{weeks: map[string]string{"": testWeek}})
	res, _ := h.filterDays(context.Background(), callRequest(map[string]any{"category": "festivo"}))

	var out struct {
		Days []DayMatch `json:"days"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Days) != 1 || out.Days[0].Date != "1/1/2026" {
		t.Errorf("days = %+v", out.Days)
	}
}

// TestFilterDaysRequiresCategory verifies the missing argument is reported
// as a tool error.
func TestFilterDaysRequiresCategory(t *testing.T) {
	h := newHandlers(fakeSource{weeks: map[string]string{"": testWeek}})
	res, err := h.filterDays(context.Background(), callRequest(map[string]any{}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Error("expected tool error")
	}
}

// TestListCategories verifies category order and configured labels.
func TestListCategories(t *testing.T) {
	h := newHandlers(fakeSource{weeks: map[string]string{"": testWeek}})
	res, _ := h.listCategories(context.Background(), callRequest(nil))

	var got []Category
	if err := json.Unmarshal([]byte(resultText(t, res)), &got); err != nil {
		t.Fatal(err)
	}
	want := []Category{
		{"all", "Todos"},
		{"crossfit", "crossfit"},
		{"gimnasticos", "gimnasticos"},
		{"festivo", "festivo"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

// TestGetScheduleArchivedWeek verifies the week argument selects an
// archived week and unknown weeks are tool errors.
func TestGetScheduleArchivedWeek(t *testing.T) {
	h := newHandlers(fakeSource{weeks: map[string]string{
		"":        testWeek,
		"navidad": `{"boxName":"Archivo","days":[]}`,
	}})

	res, _ := h.getSchedule(context.Background(), callRequest(map[string]any{"week": "navidad"}))
	var doc models.ScheduleDocument
	if err := json.Unmarshal([]byte(resultText(t, res)), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.BoxName != "Archivo" {
		t.Errorf("boxName = %q, want Archivo", doc.BoxName)
	}

	res, _ = h.getSchedule(context.Background(), callRequest(map[string]any{"week": "missing"}))
	if !res.IsError {
		t.Error("expected tool error for unknown week")
	}
}

// TestListWeeks verifies the limit argument is passed through and an empty
// archive is an empty list.
func TestListWeeks(t *testing.T) {
	now := time.Now()
	h := newHandlers(fakeSource{list: []models.WeekSummary{
		{Slug: "b", PublishedAt: now},
		{Slug: "a", PublishedAt: now.Add(-time.Hour)},
	}})

	res, _ := h.listWeeks(context.Background(), callRequest(map[string]any{"limit": 1}))
	var weeks []models.WeekSummary
	if err := json.Unmarshal([]byte(resultText(t, res)), &weeks); err != nil {
		t.Fatal(err)
	}
	if len(weeks) != 1 || weeks[0].Slug != "b" {
		t.Errorf("weeks = %+v", weeks)
	}

	h = newHandlers(fakeSource{})
	res, _ = h.listWeeks(context.Background(), callRequest(nil))
	weeks = nil
	if err := json.Unmarshal([]byte(resultText(t, res)), &weeks); err != nil {
		t.Fatal(err)
	}
	if weeks == nil || len(weeks) != 0 {
		t.Errorf("empty archive = %v, want []", weeks)
	}
}

// TestLocalWithoutArchive verifies week lookups fail cleanly when no
// archive is configured.
func TestLocalWithoutArchive(t *testing.T) {
	l := Local{}
	if _, err := l.Schedule(context.Background(), "any"); !errors.Is(err, ErrNoArchive) {
		t.Errorf("Schedule err = %v, want ErrNoArchive", err)
	}
	if _, err := l.ListWeeks(context.Background(), 0); !errors.Is(err, ErrNoArchive) {
		t.Errorf("ListWeeks err = %v, want ErrNoArchive", err)
	}
}

// TestNewBuildsServer verifies the server builds with a data source.
func TestNewBuildsServer(t *testing.T) {
	s := New(fakeSource{}, nil, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if s == nil {
		t.Fatal("New returned nil")
	}
}
