package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/wodboard/internal/config"
	"github.com/claude/wodboard/internal/importer"
	"github.com/claude/wodboard/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	weeksPath := flag.String("path", "", "directory of week .json files")
	dryRun := flag.Bool("dry-run", false, "validate files without publishing")
	history := flag.Int("history", 0, "print the N most recent import runs and exit")
	stateDir := flag.String("state-dir", "", "import state directory (default ~/.wodboard-import)")
	serverURL := flag.String("server", "", "publish through this WODBoard server instead of the database")
	apiKey := flag.String("api-key", os.Getenv("WODBOARD_AUTH_API_KEY"), "API key for -server")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *weeksPath == "" && *history == 0 {
		fmt.Fprintf(os.Stderr, "Usage: wodboard-import -config config.yaml -path /path/to/weeks [-dry-run]\n")
		fmt.Fprintf(os.Stderr, "       wodboard-import -server <URL> -api-key <key> -path /path/to/weeks\n")
		fmt.Fprintf(os.Stderr, "       wodboard-import -config config.yaml -history N\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var db *storage.DB
	if *serverURL == "" {
		db = openDatabase(ctx, log, *configPath, *dryRun)
		if db != nil {
			defer db.Close()
		}
	}

	if *history > 0 {
		if db == nil {
			log.Error("a database is required for -history")
			os.Exit(1)
		}
		if err := printHistory(ctx, db, *history); err != nil {
			log.Error("query failed", "error", err)
			os.Exit(1)
		}
		return
	}

	info, err := os.Stat(*weeksPath)
	if err != nil || !info.IsDir() {
		log.Error("weeks path does not exist or is not a directory", "path", *weeksPath)
		os.Exit(1)
	}

	// Open state database
	dir := *stateDir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Error("failed to get home directory", "error", err)
			os.Exit(1)
		}
		dir = filepath.Join(homeDir, ".wodboard-import")
	}
	state, err := importer.OpenStateDB(dir)
	if err != nil {
		log.Error("failed to open state database", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	if *dryRun {
		log.Info("DRY RUN mode: no weeks will be published")
	}

	// Run import. A nil *storage.DB must not reach the interface.
	var store importer.WeekStore
	switch {
	case *serverURL != "":
		store = importer.NewRemoteStore(*serverURL, *apiKey)
		log.Info("publishing through server", "server", *serverURL)
	case db != nil:
		store = db
	}
	start := time.Now()
	imp := importer.New(store, state, log, *dryRun)
	stats, err := imp.Import(ctx, *weeksPath)
	printStats(stats)

	if db != nil && !*dryRun {
		recordRun(ctx, db, log, *weeksPath, stats, err, time.Since(start))
	}
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}
	log.Info("import complete")
}

// openDatabase loads config, applies migrations and connects. It returns
// nil when no database is configured and dryRun allows running without one.
func openDatabase(ctx context.Context, log *slog.Logger, configPath string, dryRun bool) *storage.DB {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if !cfg.Database.Enabled() {
		if !dryRun {
			log.Error("a database is required to publish weeks (or use -server or -dry-run)")
			os.Exit(1)
		}
		return nil
	}

	dsn := cfg.Database.DSN()
	if _, err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	log.Info("database connected")
	return db
}

// recordRun writes the outcome of this run to import_logs.
func recordRun(ctx context.Context, db *storage.DB, log *slog.Logger, path string, stats *importer.Stats, runErr error, elapsed time.Duration) {
	status := storage.ImportSuccess
	var msg *string
	switch {
	case runErr != nil:
		status = storage.ImportError
		s := runErr.Error()
		msg = &s
	case stats.FilesErrored > 0:
		status = storage.ImportPartial
		s := fmt.Sprintf("%d files failed: %v", stats.FilesErrored, stats.ErroredFiles)
		msg = &s
	}
	ms := int(elapsed.Milliseconds())

	if _, err := db.InsertImportLog(ctx, storage.ImportLog{
		Source:        "cli:" + path,
		Status:        status,
		FilesReceived: stats.FilesProcessed + stats.FilesSkipped + stats.FilesErrored,
		WeeksInserted: stats.WeeksPublished,
		DurationMs:    &ms,
		ErrorMessage:  msg,
	}); err != nil {
		log.Warn("failed to record import log", "error", err)
	}
}

func printHistory(ctx context.Context, db *storage.DB, limit int) error {
	logs, err := db.QueryImportLogs(ctx, limit)
	if err != nil {
		return err
	}
	for _, l := range logs {
		line := fmt.Sprintf("%s  %-8s files=%d weeks=%d  %s",
			l.CreatedAt.Format(time.DateTime), l.Status, l.FilesReceived, l.WeeksInserted, l.Source)
		if l.ErrorMessage != nil {
			line += "  " + *l.ErrorMessage
		}
		fmt.Println(line)
	}
	return nil
}

func printStats(stats *importer.Stats) {
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("  Files processed:  %d\n", stats.FilesProcessed)
	fmt.Printf("  Files skipped:    %d (unchanged)\n", stats.FilesSkipped)
	fmt.Printf("  Files errored:    %d\n", stats.FilesErrored)
	fmt.Printf("  Weeks published:  %d\n", stats.WeeksPublished)

	if len(stats.ErroredFiles) > 0 {
		fmt.Printf("\n  Failed files:\n")
		for _, f := range stats.ErroredFiles {
			fmt.Printf("    - %s\n", f)
		}
	}
	fmt.Println()
}
