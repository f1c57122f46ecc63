package mcp

import (
	"context"

	"github.com/claude/wodboard/internal/filter"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/render"
	"github.com/mark3labs/mcp-go/mcp"
)

// DayMatch is one day card as reported by filter_days.
type DayMatch struct {
	ID       string   `json:"id"`
	Day      string   `json:"day"`
	Date     string   `json:"date"`
	Festive  bool     `json:"festive"`
	Sections []string `json:"sections"`
}

// Category is one filter control as reported by list_categories.
type Category struct {
	Category string `json:"category"`
	Label    string `json:"label"`
}

// --- Tool definitions ---

var toolGetSchedule = mcp.NewTool("get_schedule",
	mcp.WithDescription("Retrieve a week's schedule document: box name, week dates and every day with its sections (exercises, badges, workout details, holiday notices)."),
	mcp.WithString("week", mcp.Description("Archived week slug (see list_weeks). Defaults to the week currently on the board.")),
)

var toolFilterDays = mcp.NewTool("filter_days",
	mcp.WithDescription("List the days visible under a filter category, with formatted dates and the section types each day carries."),
	mcp.WithString("category", mcp.Required(), mcp.Description("'all', 'festivo' for holidays, or a section type such as 'crossfit' (see list_categories)")),
	mcp.WithString("week", mcp.Description("Archived week slug. Defaults to the current week.")),
)

var toolListWeeks = mcp.NewTool("list_weeks",
	mcp.WithDescription("List published weeks, newest first."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of weeks. Defaults to 52.")),
)

var toolListCategories = mcp.NewTool("list_categories",
	mcp.WithDescription("List the filter categories for a week: 'all', each section type in order of first appearance, and 'festivo' when the week has a holiday."),
	mcp.WithString("week", mcp.Description("Archived week slug. Defaults to the current week.")),
)

// --- Tool handlers ---

func (h *handlers) getSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.ds.Schedule(ctx, req.GetString("week", ""))
	if err != nil {
		h.log.Error("mcp get_schedule", "error", err)
		return mcp.NewToolResultError("loading schedule failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(doc)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) filterDays(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError("category parameter is required"), nil
	}

	doc, err := h.ds.Schedule(ctx, req.GetString("week", ""))
	if err != nil {
		h.log.Error("mcp filter_days", "error", err)
		return mcp.NewToolResultError("loading schedule failed: " + err.Error()), nil
	}
	tree, err := render.Render(doc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	visible := filter.ComputeVisibility(tree.Cards, category)
	days := []DayMatch{}
	for _, c := range tree.Cards {
		if !visible[c.ID] {
			continue
		}
		m := DayMatch{ID: c.ID, Day: c.Name, Date: c.Date, Festive: c.Festive, Sections: []string{}}
		for _, s := range c.Sections {
			m.Sections = append(m.Sections, s.Type)
		}
		days = append(days, m)
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"category": category,
		"days":     days,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWeeks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weeks, err := h.ds.ListWeeks(ctx, req.GetInt("limit", 0))
	if err != nil {
		h.log.Error("mcp list_weeks", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if weeks == nil {
		weeks = []models.WeekSummary{}
	}

	result, err := mcp.NewToolResultJSON(weeks)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc, err := h.ds.Schedule(ctx, req.GetString("week", ""))
	if err != nil {
		h.log.Error("mcp list_categories", "error", err)
		return mcp.NewToolResultError("loading schedule failed: " + err.Error()), nil
	}

	bar := filter.NewBar(doc, h.labels)
	categories := make([]Category, 0, len(bar.Controls))
	for _, c := range bar.Controls {
		categories = append(categories, Category{Category: c.Category, Label: c.Label})
	}

	result, err := mcp.NewToolResultJSON(categories)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
