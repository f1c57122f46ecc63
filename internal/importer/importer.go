package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/wodboard/internal/models"
	"github.com/claude/wodboard/internal/render"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int
	WeeksPublished int

	ErroredFiles []string
}

// WeekStore is the archive the importer publishes into.
type WeekStore interface {
	UpsertWeek(ctx context.Context, row models.WeekRow) (*models.WeekRow, error)
}

// Importer publishes week documents from a directory of .json files.
// The file name without extension becomes the week slug.
type Importer struct {
	store  WeekStore
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. store may be nil in dry-run mode.
func New(store WeekStore, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, state: state, log: log, dryRun: dryRun}
}

// Import processes every .json file directly under dir, in name order.
// A bad file is counted and logged; the rest are still imported.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return &imp.stats, err
		}
		if err := imp.importFile(ctx, dir, name); err != nil {
			imp.stats.FilesErrored++
			imp.stats.ErroredFiles = append(imp.stats.ErroredFiles, name)
			imp.log.Error("import failed", "file", name, "error", err)
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, dir, name string) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	hash := HashBytes(data)
	size := int64(len(data))

	if imp.state != nil {
		done, err := imp.state.IsImported(name, size, hash)
		if err != nil {
			return fmt.Errorf("checking state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Debug("skipping unchanged file", "file", name)
			return nil
		}
	}

	doc, err := models.ParseSchedule(data)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	// Reject weeks that could not be shown.
	if _, err := render.Render(doc); err != nil {
		return err
	}

	slug := strings.TrimSuffix(name, filepath.Ext(name))

	if imp.dryRun {
		imp.stats.FilesProcessed++
		imp.log.Info("dry run: would publish", "slug", slug, "days", len(doc.Days))
		return nil
	}

	row, err := imp.store.UpsertWeek(ctx, models.NewWeekRow(slug, data, doc))
	if err != nil {
		return err
	}
	imp.stats.FilesProcessed++
	imp.stats.WeeksPublished++
	imp.log.Info("published week", "slug", row.Slug, "id", row.ID)

	if imp.state != nil {
		if err := imp.state.MarkImported(name, size, hash, slug); err != nil {
			return fmt.Errorf("recording state: %w", err)
		}
	}
	return nil
}
