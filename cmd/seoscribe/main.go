package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/config"
	"github.com/seoscribe/seoscribe/internal/database"
	"github.com/seoscribe/seoscribe/internal/imports"
	"github.com/seoscribe/seoscribe/internal/llm"
	"github.com/seoscribe/seoscribe/internal/optimize"
	"github.com/seoscribe/seoscribe/internal/research"
	"github.com/seoscribe/seoscribe/internal/scorer"
	"github.com/seoscribe/seoscribe/internal/seo"
	"github.com/seoscribe/seoscribe/internal/server"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "seoscribe",
	Short:   "SEO scoring for article drafts",
	Long:    "seoscribe scores article drafts against an SEO criterion catalog, suggests improvements, and collects competitor references.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// API keys may live in a local .env
		_ = godotenv.Load()

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(draftsCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(improveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("seoscribe", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/seoscribe/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure feeds, scoring thresholds, and the LLM provider.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
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
		fmt.Println("Drafts:")
		fmt.Printf("  Total: %d\n", stats.TotalDrafts)
		fmt.Printf("  Scored: %d\n", stats.ScoredDrafts)
		fmt.Println("\nScoring:")
		fmt.Printf("  Score runs: %d\n", stats.ScoreRuns)
		fmt.Printf("  Criteria in catalog: %d\n", len(seo.DefaultRegistry().Criteria()))
		fmt.Println("\nResearch:")
		fmt.Printf("  Reference articles: %d\n", stats.ReferenceArticles)
		return nil
	},
}

// --- drafts command ---

var (
	draftKeyword string
	draftFile    string
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage article drafts",
}

var draftsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all drafts with their latest scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		listings, err := db.GetDraftListings()
		if err != nil {
			return err
		}
		if len(listings) == 0 {
			fmt.Println("No drafts yet. Add one with: seoscribe drafts add")
			return nil
		}

		fmt.Println("Drafts:")
		fmt.Println()
		for _, d := range listings {
			score := "not scored"
			if d.LatestRun != nil {
				score = fmt.Sprintf("%d/%d", d.LatestRun.TotalScore, d.LatestRun.MaxScore)
			}
			keyword := ""
			if d.PrimaryKeyword != nil {
				keyword = *d.PrimaryKeyword
			}
			fmt.Printf("  [%d] %s\n", d.ID, d.Title)
			fmt.Printf("        keyword: %s  score: %s\n", keyword, score)
		}
		return nil
	},
}

var draftsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new draft",
	Long:  "Add a draft from a title, or from a snapshot JSON file with --file.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var snap *article.Snapshot
		switch {
		case draftFile != "":
			data, err := os.ReadFile(draftFile)
			if err != nil {
				return fmt.Errorf("reading snapshot file: %w", err)
			}
			snap, err = article.ParseSnapshot(data)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				snap.Step1.Title = args[0]
			}
		case len(args) > 0:
			snap = &article.Snapshot{}
			snap.Step1.Title = args[0]
		default:
			return fmt.Errorf("provide a title or --file")
		}

		if draftKeyword != "" {
			snap.Step1.PrimaryKeyword = draftKeyword
		}

		id, err := insertDraft(db, snap, nil)
		if err != nil {
			return err
		}
		fmt.Printf("Added draft [%d]: %s\n", id, snap.Step1.Title)
		return nil
	},
}

var draftsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a draft's latest score report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}

		draft, err := db.GetDraft(id)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %d not found", id)
		}

		fmt.Printf("Draft [%d]: %s\n", draft.ID, draft.Title)
		if draft.PrimaryKeyword != nil {
			fmt.Printf("Keyword: %s\n", *draft.PrimaryKeyword)
		}
		if draft.Slug != nil {
			fmt.Printf("Slug: %s\n", *draft.Slug)
		}

		run, err := db.GetLatestRun(id)
		if err != nil {
			return err
		}
		if run == nil {
			fmt.Println("\nNot scored yet. Run: seoscribe score", id)
			return nil
		}

		results, err := db.GetRunResults(run.ID)
		if err != nil {
			return err
		}

		fmt.Printf("\nScore: %d/%d\n\n", run.TotalScore, run.MaxScore)
		registry := seo.NewRegistry(cfg.Thresholds())
		printStoredResults(registry, results)
		return nil
	},
}

var draftsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a draft and its score history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}

		draft, err := db.GetDraft(id)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %d not found", id)
		}

		if err := db.DeleteDraft(id); err != nil {
			return err
		}
		fmt.Printf("Removed draft [%d]: %s\n", id, draft.Title)
		return nil
	},
}

func init() {
	draftsAddCmd.Flags().StringVarP(&draftKeyword, "keyword", "k", "", "Primary keyword")
	draftsAddCmd.Flags().StringVarP(&draftFile, "file", "f", "", "Snapshot JSON file")

	draftsCmd.AddCommand(draftsListCmd)
	draftsCmd.AddCommand(draftsAddCmd)
	draftsCmd.AddCommand(draftsShowCmd)
	draftsCmd.AddCommand(draftsRemoveCmd)
}

// --- score command ---

var scoreFile string

var scoreCmd = &cobra.Command{
	Use:   "score [draft-id]",
	Short: "Score a draft against the SEO criterion catalog",
	Long:  "Score a stored draft by id, or a snapshot JSON file with --file (not persisted).",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := seo.NewRegistry(cfg.Thresholds())

		if scoreFile != "" {
			data, err := os.ReadFile(scoreFile)
			if err != nil {
				return fmt.Errorf("reading snapshot file: %w", err)
			}
			snap, err := article.ParseSnapshot(data)
			if err != nil {
				return err
			}

			sc := scorer.New(nil, registry, cfg.Site.BaseURL)
			report := sc.ScoreSnapshot(snap)
			printReport(registry, report)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a draft id or --file")
		}
		id, err := parseDraftID(args[0])
		if err != nil {
			return err
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		sc := scorer.New(db, registry, cfg.Site.BaseURL)
		summary, err := sc.ScoreDraft(id)
		if err != nil {
			return err
		}

		fmt.Printf("Run %s\n\n", summary.RunToken)
		printReport(registry, summary.Report)
		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Snapshot JSON file to score without storing")
}

// --- improve command ---

var (
	improveAI    bool
	improveApply bool
)

var improveCmd = &cobra.Command{
	Use:   "improve [draft-id] [criterion-id]",
	Short: "Suggest an improvement for one criterion",
	Long:  "Print the deterministic suggestion for a failing criterion, or an AI rewrite with --ai. Use --apply to write it back to the draft and rescore.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		draftID, err := parseDraftID(args[0])
		if err != nil {
			return err
		}
		cid, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid criterion id: %s", args[1])
		}
		id := seo.CriterionID(cid)

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		draft, err := db.GetDraft(draftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %d not found", draftID)
		}

		snap, err := article.ParseSnapshot([]byte(draft.Snapshot))
		if err != nil {
			return err
		}

		registry := seo.NewRegistry(cfg.Thresholds())
		if _, ok := registry.Criterion(id); !ok {
			return fmt.Errorf("unknown criterion %d", cid)
		}
		if !registry.CanImprove(id) {
			return fmt.Errorf("criterion %d has no automatic improvement; edit the draft directly", cid)
		}

		var suggestion string
		if improveAI {
			provider := llm.NewProvider(llm.Options{
				Provider:    cfg.Optimizer.Provider,
				Model:       cfg.Optimizer.Model,
				OllamaURL:   cfg.Optimizer.OllamaURL,
				OpenAIModel: cfg.Optimizer.OpenAIModel,
				APIKeyEnv:   cfg.Optimizer.APIKeyEnv,
			})
			opt := optimize.New(provider, registry, cfg.Optimizer.MaxTokens)
			suggestion, err = opt.Improve(context.Background(), id, snap)
			if err != nil {
				return err
			}
		} else {
			suggestion = registry.Improve(id, snap)
		}

		field := registry.ImprovedField(id)
		current := snap.FieldString(field)
		fmt.Printf("Criterion %d (%s)\n", cid, id.Category().Name())
		fmt.Printf("Current:   %s\n", current)
		fmt.Printf("Suggested: %s\n", suggestion)

		if !improveApply {
			return nil
		}
		if suggestion == current {
			fmt.Println("\nNothing to apply.")
			return nil
		}
		if !snap.SetField(field, suggestion) {
			return fmt.Errorf("field %q is not writable", field)
		}

		encoded, err := snap.Encode()
		if err != nil {
			return err
		}
		slug := snap.Step1.URLSlug
		keyword := snap.Step1.PrimaryKeyword
		if err := db.UpdateDraftSnapshot(draftID, snap.Step1.Title, &slug, &keyword, string(encoded)); err != nil {
			return fmt.Errorf("updating draft: %w", err)
		}

		sc := scorer.New(db, registry, cfg.Site.BaseURL)
		summary, err := sc.ScoreDraft(draftID)
		if err != nil {
			return err
		}
		fmt.Printf("\nApplied. New score: %d/%d\n", summary.Report.TotalScore, summary.Report.MaxScore)
		return nil
	},
}

func init() {
	improveCmd.Flags().BoolVar(&improveAI, "ai", false, "Use the configured LLM provider")
	improveCmd.Flags().BoolVar(&improveApply, "apply", false, "Write the suggestion back to the draft and rescore")
}

// --- import command ---

var importCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Import a live page as a draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		importer := imports.New(30*time.Second, cfg.Scoring.StopWords)
		snap, err := importer.ImportURL(context.Background(), args[0])
		if err != nil {
			return err
		}

		sourceURL := args[0]
		id, err := insertDraft(db, snap, &sourceURL)
		if err != nil {
			return err
		}

		fmt.Printf("Imported draft [%d]: %s\n", id, snap.Step1.Title)
		fmt.Printf("Score it with: seoscribe score %d\n", id)
		return nil
	},
}

// --- research command ---

var researchCmd = &cobra.Command{
	Use:   "research [keyword]",
	Short: "Collect competitor articles for a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		keyword := args[0]
		fmt.Printf("Researching %q...\n", keyword)

		result := research.New(cfg, db).Research(keyword)

		fmt.Println("\nResearch complete:")
		fmt.Printf("  Total found: %d\n", result.TotalFound)
		fmt.Printf("  Matched keyword: %d\n", result.Matched)
		fmt.Printf("  Stored: %d\n", result.Stored)
		fmt.Printf("  Duplicates skipped: %d\n", result.Duplicates)

		if len(result.Sources) > 0 {
			fmt.Println("\nStored by source:")
			type kv struct {
				key string
				val int
			}
			var sorted []kv
			for k, v := range result.Sources {
				sorted = append(sorted, kv{k, v})
			}
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].val > sorted[j].val })
			for _, s := range sorted {
				fmt.Printf("  %s: %d\n", s.key, s.val)
			}
		}
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		registry := seo.NewRegistry(cfg.Thresholds())
		sc := scorer.New(db, registry, cfg.Site.BaseURL)

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, sc, registry, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to run server on (default from config)")
}

// --- helpers ---

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "seoscribe.db")
	return database.Open(dbPath)
}

func parseDraftID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid draft ID: %s", arg)
	}
	return id, nil
}

func insertDraft(db *database.DB, snap *article.Snapshot, sourceURL *string) (int64, error) {
	encoded, err := snap.Encode()
	if err != nil {
		return 0, err
	}

	var slug, keyword *string
	if snap.Step1.URLSlug != "" {
		slug = &snap.Step1.URLSlug
	}
	if snap.Step1.PrimaryKeyword != "" {
		keyword = &snap.Step1.PrimaryKeyword
	}
	return db.InsertDraft(snap.Step1.Title, slug, keyword, string(encoded), sourceURL)
}

func printReport(registry *seo.Registry, report *seo.Report) {
	var lastCat seo.Category = -1
	for _, id := range report.Order {
		if cat := id.Category(); cat != lastCat {
			cs := report.Categories[cat]
			fmt.Printf("%s (%d/%d)\n", cat.Name(), cs.Score, cs.Max)
			lastCat = cat
		}

		crit, _ := registry.Criterion(id)
		r := report.Results[id]
		fmt.Printf("  [%d] %-7s %2d/%-2d %s\n", id, r.Status, r.Score, crit.Weight, r.Message)
	}
	fmt.Printf("\nTotal: %d/%d (%d%%)\n", report.TotalScore, report.MaxScore, report.Percent())
}

func printStoredResults(registry *seo.Registry, results []database.ScoreResult) {
	var lastCat seo.Category = -1
	for _, res := range results {
		id := seo.CriterionID(res.CriterionID)
		if cat := id.Category(); cat != lastCat {
			fmt.Printf("%s\n", cat.Name())
			lastCat = cat
		}

		weight := 0
		if crit, ok := registry.Criterion(id); ok {
			weight = crit.Weight
		}
		msg := ""
		if res.Message != nil {
			msg = *res.Message
		}
		fmt.Printf("  [%d] %-7s %2d/%-2d %s\n", res.CriterionID, res.Status, res.Score, weight, msg)
	}
}
