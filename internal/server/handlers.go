package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/claude/wodboard/internal/filter"
	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/page"
	"github.com/claude/wodboard/internal/render"
	"github.com/claude/wodboard/internal/source"
	"github.com/claude/wodboard/internal/storage"
	"github.com/go-chi/chi/v5"
)

// maxDocumentBytes caps published week documents.
const maxDocumentBytes = 1 << 20

// CardView is one card in the /api/v1/cards listing.
type CardView struct {
	ID      string `json:"id"`
	Day     string `json:"day"`
	Date    string `json:"date"`
	Festive bool   `json:"festive"`
	Visible bool   `json:"visible"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, s.src)
}

func (s *Server) handleWeekPage(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		http.NotFound(w, r)
		return
	}
	s.servePage(w, r, source.Week{Archive: s.archive, Slug: chi.URLParam(r, "slug")})
}

// servePage loads, renders and filters the schedule. Any failure shows the
// fallback message in place of the cards.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request, src source.Source) {
	category := categoryParam(r)

	var view page.View
	status := http.StatusOK
	doc, tree, err := s.load(r.Context(), src)
	if err != nil {
		s.log.Error("schedule unavailable", "error", err)
		status = errorStatus(err)
	} else {
		view.Tree = tree
		view.State = filter.NewState(tree.Cards)
		view.State.Apply(tree.Cards, category)
		if !s.opts.HideFilters {
			view.Bar = filter.NewBar(doc, s.opts.FilterLabels)
			view.Bar.Select(category)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Write(w, view, s.opts.Page); err != nil {
		s.log.Error("writing page", "error", err)
	}
}

// pinger is implemented by archives that can check their backing store.
type pinger interface {
	Ping(ctx context.Context) error
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.archive.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.log.Warn("archive unreachable", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "archive": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	src, ok := s.sourceFor(w, r)
	if !ok {
		return
	}
	doc, _, err := s.load(r.Context(), src)
	if err != nil {
		s.log.Error("schedule unavailable", "error", err)
		writeError(w, errorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	src, ok := s.sourceFor(w, r)
	if !ok {
		return
	}
	_, tree, err := s.load(r.Context(), src)
	if err != nil {
		s.log.Error("schedule unavailable", "error", err)
		writeError(w, errorStatus(err), err.Error())
		return
	}

	visible := filter.ComputeVisibility(tree.Cards, categoryParam(r))
	cards := make([]CardView, 0, len(tree.Cards))
	for _, c := range tree.Cards {
		cards = append(cards, CardView{
			ID:      c.ID,
			Day:     c.Name,
			Date:    c.Date,
			Festive: c.Festive,
			Visible: visible[c.ID],
		})
	}
	writeJSON(w, http.StatusOK, cards)
}

func (s *Server) handleListWeeks(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "week archive not configured")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	weeks, err := s.archive.ListWeeks(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if weeks == nil {
		weeks = []models.WeekSummary{}
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (s *Server) handlePublishWeek(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "week archive not configured")
		return
	}
	slug := r.URL.Query().Get("slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "slug parameter required")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}
	doc, err := models.ParseSchedule(data)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid schedule: "+err.Error())
		return
	}
	if _, err := render.Render(doc); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	row, err := s.archive.UpsertWeek(r.Context(), models.NewWeekRow(slug, data, doc))
	if err != nil {
		s.log.Error("publish error", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.log.Info("published week", "slug", row.Slug, "id", row.ID)
	writeJSON(w, http.StatusCreated, row)
}

// load fetches and renders a document. The error is one of
// *source.FetchError, *source.ParseError or *render.FormatError.
func (s *Server) load(ctx context.Context, src source.Source) (*models.ScheduleDocument, *render.Tree, error) {
	doc, err := src.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	tree, err := render.Render(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, tree, nil
}

// sourceFor picks the archived week named by ?week=, or the configured
// source when absent.
func (s *Server) sourceFor(w http.ResponseWriter, r *http.Request) (source.Source, bool) {
	slug := r.URL.Query().Get("week")
	if slug == "" {
		return s.src, true
	}
	if s.archive == nil {
		writeError(w, http.StatusNotFound, "week archive not configured")
		return nil, false
	}
	return source.Week{Archive: s.archive, Slug: slug}, true
}

func categoryParam(r *http.Request) string {
	if c := r.URL.Query().Get("filter"); c != "" {
		return c
	}
	return filter.All
}

// errorStatus maps a load failure to an HTTP status.
func errorStatus(err error) int {
	var (
		fetchErr  *source.FetchError
		parseErr  *source.ParseError
		formatErr *render.FormatError
	)
	switch {
	case errors.Is(err, storage.ErrWeekNotFound):
		return http.StatusNotFound
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &parseErr), errors.As(err, &formatErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
