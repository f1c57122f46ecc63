package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/claude/wodboard/internal/page"
	"github.com/claude/wodboard/internal/source"
	"github.com/go-chi/chi/v5"
)

// Options are the presentation and auth settings taken from config.
type Options struct {
	Page         page.Options
	FilterLabels map[string]string
	HideFilters  bool
	APIKey       string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	src     source.Source
	archive source.Archive
	opts    Options
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured. src serves the
// current week. archive may be nil, in which case the week routes answer
// 404.
func New(src source.Source, archive source.Archive, opts Options, log *slog.Logger) *Server {
	s := &Server{
		src:     src,
		archive: archive,
		opts:    opts,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/", s.handlePage)
	s.router.Get("/weeks/{slug}", s.handleWeekPage)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/schedule", s.handleSchedule)
		r.Get("/cards", s.handleCards)
		r.Get("/weeks", s.handleListWeeks)

		// Publishing (API key required)
		r.With(APIKeyAuth(s.opts.APIKey)).Post("/weeks", s.handlePublishWeek)
	})
}

// SetStatic serves files from staticFS under /static/.
func (s *Server) SetStatic(staticFS fs.FS) {
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
}

// SetMCP mounts an MCP streamable HTTP handler at /mcp.
func (s *Server) SetMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}
