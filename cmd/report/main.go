package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/angelcm/campaign-report-go/internal/chart"
	"github.com/angelcm/campaign-report-go/internal/config"
	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/pipeline"
	"github.com/angelcm/campaign-report-go/internal/report"
	"github.com/angelcm/campaign-report-go/internal/schema"
)

func main() {
	input := flag.String("input", "data/marketing_campaign_dataset.csv", "CSV file path or http(s) URL")
	output := flag.String("output", "output", "output directory for report artifacts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fatal("config", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	candidates := schema.Default()
	if cfg.SchemaFile != "" {
		if candidates, err = schema.Load(cfg.SchemaFile); err != nil {
			fatal("load schema file", err)
		}
	}

	raw, err := load(cfg, *input)
	if err != nil {
		fatal("load input", err)
	}
	if err := os.MkdirAll(*output, 0o755); err != nil {
		fatal("create output dir", err)
	}

	p := pipeline.New(logger, candidates, cfg.RevenueMultiplier)
	res, err := p.Run(context.Background(), raw)
	if err != nil {
		fatal("pipeline", err)
	}

	chartPath := filepath.Join(*output, "campaign_performance.png")
	if err := chart.Render(res.Records, chartPath); err != nil {
		fatal("render chart", err)
	}
	reportPath := filepath.Join(*output, "campaign_report.xlsx")
	if err := report.Write(res.Summary, res.Insights, chartPath, reportPath); err != nil {
		fatal("write report", err)
	}

	fmt.Println("Analysis complete.")
	fmt.Printf("Report: %s\n", reportPath)
	fmt.Printf("Chart: %s\n", chartPath)
	if n := len(res.Dropped); n > 0 {
		fmt.Printf("Dropped %d unusable rows.\n", n)
	}
}

func load(cfg config.Config, input string) (*ingest.RawTable, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		c := ingest.NewHTTPClient(cfg.HTTPTimeout)
		return ingest.FetchCSV(context.Background(), c, input)
	}
	return ingest.ReadFile(input)
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("err", err.Error()))
	os.Exit(1)
}
