// Command meeple is a one-shot CLI over the session statistics
// engine: it loads the persisted state, applies a single operation,
// and persists the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	service "github.com/okian/meeple/internal/app"

	"github.com/okian/meeple/internal/adapters/storage"
	"github.com/okian/meeple/internal/config"
	"github.com/okian/meeple/internal/domain/model"
	"github.com/okian/meeple/internal/domain/scoring"
	"github.com/okian/meeple/internal/domain/trend"
	"github.com/okian/meeple/pkg/logger"
	"github.com/okian/meeple/pkg/metrics"
)

const backupFilePermission = 0o600

func main() {
	var (
		addName    = flag.String("add", "", "Add a player with this name")
		color      = flag.String("color", "", "Display color for -add")
		removeName = flag.String("remove", "", "Remove the named player")
		record     = flag.String("record", "", "Record a session, e.g. \"alice=50,bob=30\"")
		game       = flag.String("game", "", "Game label for -record")
		sortField  = flag.String("sort", "", "Sort the roster by this field")
		descending = flag.Bool("desc", false, "Sort descending instead of ascending")
		trendFor   = flag.String("trend", "", "Print trend series for a metric (placement, dominance, gameScore)")
		exportTo   = flag.String("export", "", "Write a full-state backup to this file")
		importFrom = flag.String("import", "", "Replace all state from a backup file")
		list       = flag.Bool("list", false, "Print the roster")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := run(*addName, *color, *removeName, *record, *game,
		*sortField, *descending, *trendFor, *exportTo, *importFrom, *list); err != nil {
		os.Stderr.WriteString("meeple: " + err.Error() + "\n")
		os.Exit(1)
	}
}

//nolint:funlen // sequential one-shot dispatch
func run(addName, color, removeName, record, game,
	sortField string, descending bool, trendFor, exportTo, importFrom string, list bool) error {
	ctx := context.Background()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	svc := service.New(
		service.WithStore(store),
		service.WithLogger(log),
		service.WithMetrics(metrics.NewManager(
			metrics.WithNamespace(cfg.MetricsNamespace),
			metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		)),
	)
	defer svc.Close() //nolint:errcheck // nothing to do on close failure
	if err := svc.Load(ctx); err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	switch {
	case addName != "":
		if err := svc.AddPlayer(ctx, addName, color); err != nil {
			return err
		}
		fmt.Printf("added %s\n", addName)
	case removeName != "":
		if err := svc.RemovePlayer(ctx, removeName); err != nil {
			return err
		}
		fmt.Printf("removed %s\n", removeName)
	case record != "":
		session, err := svc.RecordSession(ctx, game, parseEntries(record))
		if err != nil {
			return err
		}
		fmt.Printf("recorded %s (%s)\n", session.Game, session.ID)
		for _, s := range session.Scores {
			fmt.Printf("  %d. %-12s score=%g dominance=%.2f gameScore=%.1f\n",
				s.Place, s.Name, s.Score, s.Dominance, s.GameScore)
		}
	case sortField != "":
		if err := svc.SortRoster(ctx, sortField, !descending); err != nil {
			return err
		}
		printRoster(svc.Players(ctx))
	case trendFor != "":
		printTrend(svc.TrendSeries(ctx, trend.Metric(trendFor)))
	case exportTo != "":
		data, err := svc.ExportState(ctx)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportTo, data, backupFilePermission); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}
		fmt.Printf("exported to %s\n", exportTo)
	case importFrom != "":
		data, err := os.ReadFile(importFrom)
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}
		if err := svc.ImportState(ctx, data); err != nil {
			return err
		}
		fmt.Printf("imported from %s\n", importFrom)
	case list:
		printRoster(svc.Players(ctx))
	default:
		showHelp()
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageDriver == config.DriverSQLite {
		return storage.NewSQLiteStore(ctx, cfg.DataFile)
	}
	return storage.NewFileStore(cfg.DataFile), nil
}

// parseEntries turns "alice=50,bob=30,carol=skip" into score entries.
// A value of "skip" marks a player who sat the session out; anything
// unparseable is dropped by the scoring engine itself.
func parseEntries(spec string) []scoring.Entry {
	var entries []scoring.Entry
	for _, part := range strings.Split(spec, ",") {
		name, raw, _ := strings.Cut(strings.TrimSpace(part), "=")
		entries = append(entries, scoring.Entry{
			Name:         name,
			RawScore:     raw,
			Participated: raw != "skip",
		})
	}
	return entries
}

func printRoster(players []model.Player) {
	for _, p := range players {
		best := "-"
		if p.BiggestWin != nil {
			best = fmt.Sprintf("%.2f%% (%s)", p.BiggestWin.Percent*100, p.BiggestWin.Game)
		}
		fmt.Printf("%-12s games=%d wins=%d avgPlacement=%.2f avgDominance=%.2f avgGameScore=%.1f biggestWin=%s\n",
			p.Name, p.Games, p.Wins, p.AvgPlacement, p.AvgDominance, p.AvgGameScore, best)
	}
}

func printTrend(series map[string][]trend.Point) {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s:", name)
		for _, p := range series[name] {
			fmt.Printf(" (%d, %.2f)", p.Session, p.Average)
		}
		fmt.Println()
	}
}

func showHelp() {
	os.Stdout.WriteString(`Meeple Board Game Stats
=======================

Tracks recurring board-game sessions and derives per-player statistics.

Usage:
  meeple [flags]

Flags:
  -add NAME -color COLOR   Add a player
  -remove NAME             Remove a player (history is kept)
  -record SPEC -game GAME  Record a session, SPEC like "alice=50,bob=30"
                           (use "=skip" for a player who sat out)
  -sort FIELD [-desc]      Sort and print the roster (name, games, wins,
                           avgPlacement, avgDominance, avgGameScore, biggestWin)
  -trend METRIC            Print running-average series (placement,
                           dominance, gameScore)
  -export FILE             Write a full-state backup
  -import FILE             Replace all state from a backup
  -list                    Print the roster

Configuration (env, prefix MEEPLE_, or YAML via MEEPLE_CONFIG):
  MEEPLE_DATA_FILE         State location (default meeple.json)
  MEEPLE_STORAGE_DRIVER    json or sqlite (default json)
  MEEPLE_LOG_LEVEL         debug, info, warn, error (default info)
`)
}
