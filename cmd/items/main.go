package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "os"
    "strconv"
    "strings"
    "time"

    "github.com/rivo/tview"
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"

    "geprices/internal/aggregate"
    "geprices/internal/config"
    "geprices/internal/httpx"
    "geprices/internal/item"
    "geprices/internal/provider"
    "geprices/internal/provider/ge"
    "geprices/internal/provider/wiki"
    "geprices/internal/render"
)

func main() {
    var idsCSV string
    var configPath string
    var userAgent string
    var complete bool
    var completeSeries bool
    var live bool
    var force bool
    var sortBy string
    var limit int
    var asJSON bool
    var tui bool

    flag.StringVar(&idsCSV, "ids", getenv("ITEM_IDS", ""), "comma-separated item ids (default: every item)")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json or config.yaml (optional)")
    flag.StringVar(&userAgent, "user-agent", "", "User-Agent with tool name and contact (overrides config)")
    flag.BoolVar(&complete, "complete", false, "drop items missing any static field")
    flag.BoolVar(&completeSeries, "complete-series", false, "drop items missing any 5m/1h/6h series")
    flag.BoolVar(&live, "live", false, "add GE current price and 30 day trend columns (one request per item)")
    flag.BoolVar(&force, "force", false, "with -live, always refetch GE data")
    flag.StringVar(&sortBy, "sort", "", "sort by roi, margin or name")
    flag.IntVar(&limit, "limit", 25, "max rows to print, 0 for all")
    flag.BoolVar(&asJSON, "json", false, "print records as JSON")
    flag.BoolVar(&tui, "tui", false, "show an interactive table")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if userAgent != "" { cfg.UserAgent = userAgent }
    if err := cfg.Validate(); err != nil { log.Fatalf("config: %v", err) }

    logger, err := createLogger(cfg.LogLevel)
    if err != nil { log.Fatalf("logger: %v", err) }
    defer logger.Sync()

    httpClient := httpx.New(time.Duration(cfg.RequestTimeoutSec)*time.Second, cfg.UserAgent)
    httpClient.Logger = logger.Named("http")

    // httpClient owns the User-Agent for both APIs.
    wikiClient := wiki.NewWikiAPIClient(
        wiki.WithHTTPClient(httpClient),
        wiki.WithBaseURL(cfg.Wiki.BaseURL),
    )
    geClient := ge.NewCatalogueAPIClient(
        ge.WithHTTPClient(httpClient),
        ge.WithBaseURL(cfg.GE.BaseURL),
    )

    agg := aggregate.New(wikiClient, geClient,
        aggregate.WithLogger(logger.Named("aggregate")),
        aggregate.WithLinkBaseURL(cfg.GE.LinkBaseURL),
        aggregate.WithStrictLookup(cfg.StrictLookup),
    )

    ctx := context.Background()
    if err := agg.Load(ctx); err != nil { logger.Fatal("load", zap.Error(err)) }

    var records []*item.Record
    if ids := splitCSV(idsCSV); len(ids) > 0 {
        for _, id := range ids {
            r, err := agg.GetItem(id)
            if err != nil {
                logger.Warn("item", zap.String("id", id), zap.Error(err))
                continue
            }
            records = append(records, r)
        }
    } else {
        records = agg.GetItems()
    }

    if complete { records = aggregate.FilterComplete(records) }
    if completeSeries { records = aggregate.FilterCompleteSeries(records) }
    switch strings.ToLower(sortBy) {
    case "":
    case "roi":
        records = aggregate.SortBy(records, aggregate.ByROI)
    case "margin":
        records = aggregate.SortBy(records, aggregate.ByMargin)
    case "name":
        records = aggregate.SortBy(records, aggregate.ByName)
    default:
        logger.Fatal("unknown -sort value", zap.String("sort", sortBy))
    }
    if limit > 0 && len(records) > limit { records = records[:limit] }
    logger.Info("items selected", zap.Int("count", len(records)))

    if asJSON {
        snaps := make([]item.Snapshot, 0, len(records))
        for _, r := range records { snaps = append(snaps, r.Snapshot()) }
        out := struct{ Items []item.Snapshot `json:"items"` }{Items: snaps}
        b, _ := json.MarshalIndent(out, "", "  ")
        fmt.Println(string(b))
        return
    }

    columns := append(render.DefaultColumns(), render.MarginColumns()...)
    if live {
        columns = append(columns, liveColumns(ctx, agg, force, logger)...)
    }

    if tui {
        table := render.NewTable(records, columns)
        if err := tview.NewApplication().SetRoot(table, true).EnableMouse(true).Run(); err != nil {
            logger.Fatal("tui", zap.Error(err))
        }
        return
    }
    if err := render.Write(os.Stdout, records, columns); err != nil {
        logger.Fatal("render", zap.Error(err))
    }
}

// liveColumns reads GE catalogue data per record. Errors show as "?".
func liveColumns(ctx context.Context, agg *aggregate.Aggregator, force bool, logger *zap.Logger) []render.Column {
    return []render.Column{
        {Label: "GE Price", Align: tview.AlignRight, Value: func(r *item.Record) string {
            v, err := agg.CurrentPrice(ctx, r, force)
            if err != nil {
                logger.Debug("ge price", zap.String("id", r.ID()), zap.Error(err))
                return "?"
            }
            return strconv.FormatFloat(v, 'f', -1, 64)
        }},
        // Reuses the quote fetched for GE Price.
        {Label: "30d", Value: func(r *item.Record) string {
            trend, err := agg.Trend(ctx, r, provider.Day30, false)
            if err != nil { return "?" }
            change, err := agg.PercentChange(ctx, r, provider.Day30, false)
            if err != nil { return string(trend) }
            return fmt.Sprintf("%s %+.1f%%", trend, change)
        }},
    }
}

func createLogger(level string) (*zap.Logger, error) {
    var lvl zapcore.Level
    if err := lvl.UnmarshalText([]byte(level)); err != nil {
        return nil, fmt.Errorf("invalid log level %q: %w", level, err)
    }
    cfg := zap.NewDevelopmentConfig()
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    cfg.OutputPaths = []string{"stderr"}
    return cfg.Build()
}

func splitCSV(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" { out = append(out, p) }
    }
    return out
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
