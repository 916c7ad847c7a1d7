package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/luckydeck/lobby/internal/cache"
	"github.com/luckydeck/lobby/internal/catalog"
	"github.com/luckydeck/lobby/internal/config"
	"github.com/luckydeck/lobby/internal/domain"
	"github.com/luckydeck/lobby/internal/log"
	"github.com/luckydeck/lobby/internal/search"
	"github.com/luckydeck/lobby/internal/stats"
	"github.com/luckydeck/lobby/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showVersion bool
		sourcePath  string
		seedPath    string

		query      string
		scope      string
		types      string
		providers  string
		tags       string
		favorites  bool
		flagNew    bool
		hot        bool
		comingSoon bool
		minRTP     float64
		maxRTP     float64
		sortKey    string
		page       int
		pageSize   int

		showStats bool
		topN      int
		suggest   string
		toggle    string
	)

	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&sourcePath, "source", "", "catalog source (.db snapshot or .json file); overrides config")
	flag.StringVar(&seedPath, "seed", "", "convert a .json catalog into the bolt snapshot at -source and exit")

	flag.StringVar(&query, "q", "", "free-text search")
	flag.StringVar(&scope, "scope", "all", "search scope: all|title|provider|tag")
	flag.StringVar(&types, "types", "", "comma-separated game types")
	flag.StringVar(&providers, "providers", "", "comma-separated provider ids")
	flag.StringVar(&tags, "tags", "", "comma-separated tag fragments")
	flag.BoolVar(&favorites, "favorites", false, "favorites only")
	flag.BoolVar(&flagNew, "new", false, "new games only")
	flag.BoolVar(&hot, "hot", false, "hot games only")
	flag.BoolVar(&comingSoon, "coming-soon", false, "coming-soon games only")
	flag.Float64Var(&minRTP, "min-rtp", -1, "minimum RTP percentage")
	flag.Float64Var(&maxRTP, "max-rtp", -1, "maximum RTP percentage")
	flag.StringVar(&sortKey, "sort", "", "sort: popular|newest|title_asc|title_desc|rating")
	flag.IntVar(&page, "page", 1, "1-based page number")
	flag.IntVar(&pageSize, "page-size", 0, "page size (0 = default)")

	flag.BoolVar(&showStats, "stats", false, "print catalog stats snapshot")
	flag.IntVar(&topN, "top", 0, "print top N games by play count")
	flag.StringVar(&suggest, "suggest", "", "print typeahead suggestions for the given text")
	flag.StringVar(&toggle, "toggle", "", "toggle a flag, format id:flag (e.g. 42:favorite)")
	flag.Parse()

	if showVersion {
		fmt.Printf("lobby %s\n", Version)
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if sourcePath != "" {
		cfg.Catalog.SourcePath = sourcePath
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)
	logger.Info("starting lobby", "version", Version)

	if seedPath != "" {
		return seedSnapshot(seedPath, cfg.Catalog.SourcePath)
	}

	src, err := openSource(cfg.Catalog.SourcePath)
	if err != nil {
		return err
	}

	st := store.New(src, logger)
	if err := st.Initialize(); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	resultCache := cache.New(cfg.Cache.DefaultTTL, logger)
	svc := catalog.NewService(st, resultCache, catalog.Options{
		DefaultPageSize: cfg.Query.DefaultPageSize,
		MaxPageSize:     cfg.Query.MaxPageSize,
		QueryTTL:        cfg.Cache.QueryTTL,
	}, logger)

	switch {
	case toggle != "":
		id, flagName, ok := strings.Cut(toggle, ":")
		if !ok {
			return fmt.Errorf("invalid -toggle value %q, want id:flag", toggle)
		}
		value, ok := svc.ToggleFlag(id, domain.Flag(flagName))
		if !ok {
			fmt.Printf("game %q or flag %q not found\n", id, flagName)
			return nil
		}
		fmt.Printf("%s %s=%t\n", id, flagName, value)
		return nil

	case suggest != "":
		searchSvc := search.NewService(st, logger)
		return printJSON(searchSvc.Suggest(suggest, 10))

	case showStats:
		reporter := stats.NewReporter(st, resultCache, cfg.Cache.StatsTTL, logger)
		return printJSON(reporter.StatsSnapshot())

	case topN > 0:
		reporter := stats.NewReporter(st, resultCache, cfg.Cache.StatsTTL, logger)
		return printJSON(reporter.TopGames(topN))

	default:
		criteria := domain.Criteria{
			Query:      query,
			Scope:      domain.SearchScope(scope),
			Providers:  splitList(providers),
			Tags:       splitList(tags),
			Favorites:  favorites,
			New:        flagNew,
			Hot:        hot,
			ComingSoon: comingSoon,
			Sort:       domain.SortKey(sortKey),
			Page:       page,
			PageSize:   pageSize,
		}
		for _, t := range splitList(types) {
			criteria.Types = append(criteria.Types, domain.GameType(t))
		}
		if minRTP >= 0 {
			criteria.MinRTP = &minRTP
		}
		if maxRTP >= 0 {
			criteria.MaxRTP = &maxRTP
		}

		result, err := svc.Query(criteria)
		if err != nil {
			return err
		}
		return printJSON(result)
	}
}

// openSource picks a Source implementation from the file extension.
func openSource(path string) (store.Source, error) {
	switch {
	case path == "":
		return nil, fmt.Errorf("no catalog source configured; pass -source or set catalog.source_path")
	case strings.HasSuffix(path, ".json"):
		return store.NewJSONSource(path), nil
	default:
		return store.NewBoltSource(path), nil
	}
}

// seedSnapshot converts a JSON catalog file into a bolt snapshot.
func seedSnapshot(jsonPath, dbPath string) error {
	if dbPath == "" {
		return fmt.Errorf("-seed requires -source to name the snapshot file to write")
	}

	snap, err := store.NewJSONSource(jsonPath).Load()
	if err != nil {
		return err
	}
	if err := store.Seed(dbPath, snap); err != nil {
		return err
	}

	fmt.Printf("wrote %d games, %d providers to %s\n", len(snap.Games), len(snap.Providers), dbPath)
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
