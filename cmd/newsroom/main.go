package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openclaw/newsroom/internal/config"
	"github.com/openclaw/newsroom/internal/database"
	"github.com/openclaw/newsroom/internal/ingest"
	"github.com/openclaw/newsroom/internal/logger"
	"github.com/openclaw/newsroom/internal/server"
)

var version = "dev"

var (
	configPath string
	dbPath     string
	logLevel   string
	logPretty  bool
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "newsroom",
	Short:   "Index and explore daily intelligence reports",
	Long:    "Newsroom indexes markdown intelligence reports into a searchable database and links reports that mention the same places.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		switch {
		case err == nil:
			cfg, err = config.Load(path)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
		case configPath != "":
			return err
		default:
			// No config file anywhere: run on built-in defaults.
			cfg, err = config.LoadDefault()
			if err != nil {
				return err
			}
		}

		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		if logPretty {
			cfg.Logging.Pretty = true
		}
		logger.Setup(cfg.Logging.Level, cfg.Logging.Pretty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "Human-readable log output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(entityCmd)
	rootCmd.AddCommand(relatedCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("newsroom", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default config and an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
		} else {
			if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}
			if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("Created config: %s\n", target)
			fmt.Println("Edit it to point at your reports directory.")
		}

		var err error
		cfg, err = config.Load(target)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		version, err := db.SchemaVersion()
		if err != nil {
			return err
		}
		fmt.Printf("Database ready: %s (schema v%d)\n", db.Path(), version)
		return nil
	},
}

// --- index command ---

var indexCmd = &cobra.Command{
	Use:   "index [dir]",
	Short: "Index report files into the database",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		dir := cfg.GetReportsDir()
		if len(args) > 0 {
			dir = args[0]
		}

		fmt.Printf("Indexing reports from %s\n", dir)
		result, err := ingest.New(db).Run(dir)
		if err != nil {
			return err
		}

		fmt.Printf("\nIndexed %d new/updated reports in %s\n", result.Changed(), result.Duration.Round(time.Millisecond))
		fmt.Printf("  Scanned: %d\n", result.Scanned)
		fmt.Printf("  Created: %d\n", result.Created)
		fmt.Printf("  Updated: %d\n", result.Updated)
		fmt.Printf("  Unchanged: %d\n", result.Unchanged)
		fmt.Printf("  Skipped: %d\n", result.Skipped)
		if result.Failed > 0 {
			fmt.Printf("  Failed: %d\n", result.Failed)
		}
		fmt.Printf("  Connections: %d\n", result.Connections)
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if servePort > 0 {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Printf("Starting server at http://%s\n", cfg.Addr())
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(ctx, db, cfg)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")
}

// --- search command ---

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across indexed reports",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		query := strings.Join(args, " ")
		results, err := db.Search(query, searchLimit)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Printf("No matches for %q.\n", query)
			return nil
		}

		fmt.Printf("%d match(es) for %q:\n\n", len(results), query)
		for _, r := range results {
			fmt.Printf("  %s  %-14s %s\n", r.Date, r.Slug, firstLine(stripMarks(r.Snippet)))
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", database.DefaultLimit, "Maximum number of results")
}

// --- entity command ---

var entityCmd = &cobra.Command{
	Use:   "entity <name>",
	Short: "List every report that mentions a place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		name := strings.Join(args, " ")
		appearances, err := db.EntityTimeline(name)
		if err != nil {
			return err
		}

		if len(appearances) == 0 {
			fmt.Printf("No reports mention %q.\n", name)
			return nil
		}

		fmt.Printf("%q appears in %d report(s):\n\n", strings.ToLower(name), len(appearances))
		for _, a := range appearances {
			fmt.Printf("  %s  %-14s %s (%dx)\n", a.Date, a.Slug, a.Title, a.MentionCount)
			if a.Context != "" {
				fmt.Printf("      %s\n", a.Context)
			}
		}
		return nil
	},
}

// --- related command ---

var relatedLimit int

var relatedCmd = &cobra.Command{
	Use:   "related <report-id>",
	Short: "Show reports connected to one report through shared places",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid report ID: %s", args[0])
		}

		related, err := db.RelatedReports(id, relatedLimit)
		if err != nil {
			return err
		}

		if len(related) == 0 {
			fmt.Printf("No reports related to %d.\n", id)
			return nil
		}

		for _, r := range related {
			fmt.Printf("  %s  %-14s %s (via %s, strength %.1f)\n",
				r.Date, r.Slug, r.Title, r.SharedEntity, r.Strength)
		}
		return nil
	},
}

func init() {
	relatedCmd.Flags().IntVarP(&relatedLimit, "limit", "n", database.DefaultLimit, "Maximum number of results")
}

// --- top command ---

var (
	topDate  string
	topLimit int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the most mentioned places",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		entities, err := db.TopEntities(topDate, topLimit)
		if err != nil {
			return err
		}

		if len(entities) == 0 {
			fmt.Println("No entities indexed yet.")
			return nil
		}

		for i, e := range entities {
			fmt.Printf("  %2d. %-24s %d mention(s)\n", i+1, e.Name, e.TotalMentions)
		}
		return nil
	},
}

func init() {
	topCmd.Flags().StringVar(&topDate, "date", "", "Restrict to one date (YYYY-MM-DD)")
	topCmd.Flags().IntVarP(&topLimit, "limit", "n", database.DefaultLimit, "Maximum number of entities")
}

// --- sources command ---

var sourcesDate string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show cited sources by trust rating",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.SourceStats(sourcesDate)
		if err != nil {
			return err
		}

		if len(stats) == 0 {
			fmt.Println("No sources indexed yet.")
			return nil
		}

		for _, s := range stats {
			fmt.Printf("  %-28s %-6s %d citation(s)\n", s.SourceName, s.TrustRating, s.Count)
		}
		return nil
	},
}

func init() {
	sourcesCmd.Flags().StringVar(&sourcesDate, "date", "", "Restrict to one date (YYYY-MM-DD)")
}

// --- status command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and index status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Index:")
		fmt.Printf("  Reports: %d\n", stats.Reports)
		fmt.Printf("  Entities: %d\n", stats.Entities)
		fmt.Printf("  Entity links: %d\n", stats.ReportEntities)
		fmt.Printf("  Sources: %d\n", stats.Sources)
		fmt.Printf("  Connections: %d\n", stats.Connections)
		fmt.Printf("  Days with reports: %d\n", stats.Dates)

		run, err := db.LastIngestRun()
		if err != nil {
			return err
		}
		if run == nil {
			fmt.Println("\nNo ingest runs recorded. Run 'newsroom index' first.")
			return nil
		}
		fmt.Println("\nLast ingest:")
		fmt.Printf("  Started: %s (%s)\n", run.StartedAt, run.Status)
		fmt.Printf("  Scanned %d, created %d, updated %d, unchanged %d, skipped %d, failed %d\n",
			run.Scanned, run.Created, run.Updated, run.Unchanged, run.Skipped, run.Failed)
		return nil
	},
}

func openDB() (*database.DB, error) {
	path := cfg.GetDBPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return database.Open(path)
}

// stripMarks removes search highlight tags for terminal output.
func stripMarks(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "")
	return strings.ReplaceAll(s, "</mark>", "")
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return s
}
