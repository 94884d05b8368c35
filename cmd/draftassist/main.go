package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aatrey56/ff-draft-assistant/internal/analytics"
	"github.com/aatrey56/ff-draft-assistant/internal/catalog"
	"github.com/aatrey56/ff-draft-assistant/internal/config"
	"github.com/aatrey56/ff-draft-assistant/internal/ledger"
	"github.com/aatrey56/ff-draft-assistant/internal/logger"
	"github.com/aatrey56/ff-draft-assistant/internal/model"
	"github.com/aatrey56/ff-draft-assistant/internal/reasoning"
	"github.com/aatrey56/ff-draft-assistant/internal/recommend"
	"github.com/aatrey56/ff-draft-assistant/internal/reconcile"
	"github.com/aatrey56/ff-draft-assistant/internal/summary"
	"github.com/aatrey56/ff-draft-assistant/internal/tools"
)

func main() {
	var (
		configPath  = flag.String("config", "", "config file (yaml/json); empty uses defaults and DRAFTASSIST_* env")
		statePath   = flag.String("state", "", "draft state JSON file, - for stdin (required)")
		catalogPath = flag.String("catalog", "", "player snapshot (.json or .db); overrides catalog.path")
		offline     = flag.Bool("offline", false, "print draft analysis, tiers and sleepers without the reasoning service")
		asJSON      = flag.Bool("json", false, "print JSON instead of styled text")
		maxTiers    = flag.Int("tiers", 3, "tiers shown per position in offline mode")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
		cfg.Catalog.Format = ""
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.Component("draftassist")

	if *statePath == "" {
		log.Fatal("-state is required")
	}
	state, err := readState(*statePath)
	if err != nil {
		log.Fatalf("read draft state: %v", err)
	}

	snap, err := catalog.Open(cfg.Catalog.Path, cfg.Catalog.Format)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}
	log.WithFields(logrus.Fields{"players": snap.Len(), "path": cfg.Catalog.Path}).Info("catalog loaded")

	if *offline {
		runOffline(state, snap, *asJSON, *maxTiers)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := reasoning.NewVertexService(ctx, reasoning.VertexConfig{
		Project:         cfg.Reasoning.Project,
		Location:        cfg.Reasoning.Location,
		Model:           cfg.Reasoning.Model,
		Temperature:     float32(cfg.Reasoning.Temperature),
		MaxOutputTokens: int32(cfg.Reasoning.MaxOutputTokens),
	}, logger.Component("reasoning"))
	if err != nil {
		log.Fatalf("reasoning service: %v (use -offline to skip it)", err)
	}
	defer svc.Close()

	exec, err := tools.NewExecutor(snap, analytics.DefaultPolicy{})
	if err != nil {
		log.Fatalf("tools: %v", err)
	}
	orch, err := recommend.New(svc, snap, exec, recommend.Options{
		Timeout:         cfg.Reasoning.Timeout,
		ToolConcurrency: cfg.Engine.ToolConcurrency,
		Summary: summary.Options{
			RecentPicks:  cfg.Engine.RecentPicks,
			TopAvailable: cfg.Engine.TopAvailable,
		},
	}, logger.Component("recommend"))
	if err != nil {
		log.Fatalf("orchestrator: %v", err)
	}

	rec, err := orch.GetRecommendation(ctx, state)
	if err != nil {
		if recommend.IsTimeout(err) {
			log.Errorf("reasoning service timed out after %s; try again or raise reasoning.timeout", cfg.Reasoning.Timeout)
		}
		log.Fatalf("recommendation failed: %v", err)
	}
	if *asJSON {
		printJSON(rec)
		return
	}
	fmt.Print(renderRecommendation(rec))
}

func readState(path string) (model.DraftState, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return model.DraftState{}, err
	}
	return model.ParseDraftState(raw)
}

type offlineReport struct {
	Analysis   *ledger.Analysis               `json:"analysis"`
	Positional []analytics.PositionalAnalysis `json:"positional"`
	Sleepers   []analytics.Sleeper            `json:"sleepers"`
	Warnings   []string                       `json:"warnings,omitempty"`
}

func runOffline(state model.DraftState, snap *catalog.Snapshot, asJSON bool, maxTiers int) {
	settings := state.LeagueSettings.WithDefaults()
	drafted := ledger.BuildDraftLedger(state.DraftedPlayers, settings.TeamCount).DraftedNames()
	pool := snap.QueryPlayers(catalog.Filter{ExcludeNames: drafted})
	an := analytics.NewAnalyzer(analytics.DefaultPolicy{}, settings.ScoringFormat)

	report := offlineReport{
		Analysis: ledger.Analyze(state),
		Sleepers: an.FindSleepers(pool, analytics.SleeperQuery{}),
		Warnings: reconcile.BuildReport(state).Messages(),
	}
	for _, pos := range model.Positions {
		report.Positional = append(report.Positional, an.Positional(pool, pos))
	}

	if asJSON {
		printJSON(report)
		return
	}
	fmt.Print(renderAnalysis(report.Analysis))
	fmt.Print(renderWarnings(report.Warnings))
	fmt.Println()
	for _, pa := range report.Positional {
		fmt.Print(renderPositional(pa, maxTiers))
	}
	fmt.Println()
	fmt.Print(renderSleepers(report.Sleepers))
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(b))
}
