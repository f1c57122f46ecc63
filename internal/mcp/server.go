package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
// labels overrides filter category display names as in the web page.
func New(ds DataSource, labels map[string]string, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("WODBoard", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("WODBoard weekly workout schedule. Read the current or an archived week, list filter categories and see which days match a category."),
	)

	h := &handlers{ds: ds, labels: labels, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetSchedule, Handler: h.getSchedule},
		server.ServerTool{Tool: toolFilterDays, Handler: h.filterDays},
		server.ServerTool{Tool: toolListWeeks, Handler: h.listWeeks},
		server.ServerTool{Tool: toolListCategories, Handler: h.listCategories},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCurrentWeek, Handler: h.currentWeek},
		server.ServerResource{Resource: resWeekIndex, Handler: h.weekIndex},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds     DataSource
	labels map[string]string
	log    *slog.Logger
}

// --- Resource definitions ---

var resCurrentWeek = mcp.NewResource(
	"wodboard://current_week",
	"Current Week",
	mcp.WithResourceDescription("The schedule document currently shown on the board"),
	mcp.WithMIMEType("application/json"),
)

var resWeekIndex = mcp.NewResource(
	"wodboard://weeks",
	"Published Weeks",
	mcp.WithResourceDescription("Archived weeks, newest first"),
	mcp.WithMIMEType("application/json"),
)
