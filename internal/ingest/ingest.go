package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openclaw/newsroom/internal/database"
	"github.com/openclaw/newsroom/internal/extract"
	"github.com/openclaw/newsroom/internal/logger"
	"github.com/openclaw/newsroom/internal/metrics"
)

// filenameRE matches report files named YYYY-MM-DD-slug.md.
var filenameRE = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.md$`)

// Result summarizes one ingestion pass over a reports directory.
type Result struct {
	RunID       string
	Scanned     int
	Created     int
	Updated     int
	Unchanged   int
	Skipped     int
	Failed      int
	Connections int
	Duration    time.Duration
}

// Changed returns how many files had their stored record written.
func (r *Result) Changed() int {
	return r.Created + r.Updated
}

// Ingester indexes report directories into the database.
type Ingester struct {
	db  *database.DB
	log zerolog.Logger
}

// New creates an Ingester writing into db.
func New(db *database.DB) *Ingester {
	return &Ingester{db: db, log: logger.New("ingest")}
}

// Run indexes every report file under dir in name order, rebuilds the
// connection graph and records the pass in the ingest run log. A file
// that fails to store is logged and counted, never fatal; Run only errors
// when the directory cannot be read or the rebuild fails.
func (ing *Ingester) Run(dir string) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading reports directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		res.Scanned++
		date, slug, ok := parseFilename(name)
		if !ok {
			res.Skipped++
			ing.log.Debug().Str("file", name).Msg("skipping non-report file")
			continue
		}

		outcome, err := ing.IngestFile(filepath.Join(dir, name), date, slug)
		if err != nil {
			res.Failed++
			metrics.IngestFiles.WithLabelValues("failed").Inc()
			ing.log.Error().Err(err).Str("file", name).Msg("failed to index report")
			continue
		}
		switch outcome {
		case database.Created:
			res.Created++
		case database.Updated:
			res.Updated++
		default:
			res.Unchanged++
		}
		metrics.IngestFiles.WithLabelValues(outcome.String()).Inc()
	}

	connections, err := ing.db.RebuildConnections()
	if err != nil {
		return nil, fmt.Errorf("rebuilding connections: %w", err)
	}
	res.Connections = connections
	metrics.ConnectionsTotal.Set(float64(connections))

	res.Duration = time.Since(start)
	status := "ok"
	if res.Failed > 0 {
		status = "errors"
	}
	run := database.IngestRun{
		RunID:      res.RunID,
		StartedAt:  start.UTC().Format(time.RFC3339),
		DurationMS: res.Duration.Milliseconds(),
		Scanned:    res.Scanned,
		Created:    res.Created,
		Updated:    res.Updated,
		Unchanged:  res.Unchanged,
		Skipped:    res.Skipped,
		Failed:     res.Failed,
		Status:     status,
	}
	if err := ing.db.RecordIngestRun(run); err != nil {
		return nil, err
	}
	metrics.IngestRuns.Inc()
	metrics.IngestDuration.Observe(res.Duration.Seconds())

	ing.log.Info().
		Str("run_id", res.RunID).
		Int("scanned", res.Scanned).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("unchanged", res.Unchanged).
		Int("skipped", res.Skipped).
		Int("failed", res.Failed).
		Int("connections", res.Connections).
		Dur("duration", res.Duration).
		Msg("ingest complete")
	return res, nil
}

// IngestFile indexes a single report file without touching the connection
// graph. The caller supplies the date and slug already parsed from the
// file name.
func (ing *Ingester) IngestFile(path, date, slug string) (database.Outcome, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return database.Unchanged, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(raw)

	rec := database.ReportRecord{
		Date:      date,
		Slug:      slug,
		Category:  CategoryForSlug(slug),
		Title:     extract.Title(content, date, slug),
		Content:   content,
		WordCount: extract.WordCount(content),
		FilePath:  path,
		FileHash:  extract.Fingerprint(content),
		Entities:  entityLinks(content),
		Sources:   sourceRefs(content),
	}

	id, outcome, err := ing.db.SaveReport(rec)
	if err != nil {
		return database.Unchanged, err
	}
	if outcome != database.Unchanged {
		ing.log.Debug().
			Int64("report_id", id).
			Str("file", filepath.Base(path)).
			Str("outcome", outcome.String()).
			Msg("indexed report")
	}
	return outcome, nil
}

// parseFilename splits YYYY-MM-DD-slug.md into its parts. Template files,
// non-markdown files and names whose date is not a real calendar day are
// rejected.
func parseFilename(name string) (date, slug string, ok bool) {
	if strings.HasPrefix(name, "TEMPLATE") {
		return "", "", false
	}
	m := filenameRE.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	if _, err := time.Parse("2006-01-02", m[1]); err != nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// CategoryForSlug maps a report slug to its stored category.
func CategoryForSlug(slug string) string {
	switch {
	case slug == "world":
		return "world"
	case slug == "europe", slug == "mideast", slug == "africa",
		slug == "asia", slug == "americas", slug == "state-media":
		return "regional"
	case strings.HasPrefix(slug, "tech"):
		return "tech"
	case strings.HasPrefix(slug, "debate"):
		return "debate"
	default:
		return "other"
	}
}

func entityLinks(content string) []database.EntityLink {
	var links []database.EntityLink
	for _, e := range extract.Entities(content) {
		links = append(links, database.EntityLink{
			Name:     e.Key,
			Type:     e.Type,
			Lat:      e.Lat,
			Lng:      e.Lng,
			Mentions: e.Count,
			Context:  e.Context,
		})
	}
	return links
}

func sourceRefs(content string) []database.SourceRef {
	var refs []database.SourceRef
	for _, s := range extract.Sources(content) {
		refs = append(refs, database.SourceRef{
			URL:   s.URL,
			Name:  s.Name,
			Trust: s.Trust,
			Title: s.Title,
		})
	}
	return refs
}
