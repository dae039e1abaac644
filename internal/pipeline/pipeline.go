package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/angelcm/campaign-report-go/internal/aggregate"
	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/insights"
	"github.com/angelcm/campaign-report-go/internal/metrics"
	"github.com/angelcm/campaign-report-go/internal/models"
	"github.com/angelcm/campaign-report-go/internal/normalize"
	"github.com/angelcm/campaign-report-go/internal/schema"
)

// ErrNoRecords means every source row was dropped (or the input had none);
// there is nothing to summarize.
var ErrNoRecords = errors.New("no usable records after normalization")

type Pipeline struct {
	log        *slog.Logger
	candidates schema.Candidates
	norm       *normalize.Normalizer
}

func New(log *slog.Logger, candidates schema.Candidates, multiplier float64) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	if candidates == nil {
		candidates = schema.Default()
	}
	return &Pipeline{log: log, candidates: candidates, norm: normalize.New(log, multiplier)}
}

// Result is everything one run produces: the canonical table for the chart
// collaborator, the summary and insights for the report collaborator, and the
// rows excluded along the way.
type Result struct {
	Records  []models.CampaignRecord
	Summary  models.SummaryStatistics
	Insights []models.Insight
	Dropped  []models.DroppedRow
}

// Run executes resolve → normalize → aggregate → compose over one raw table.
func (p *Pipeline) Run(ctx context.Context, raw *ingest.RawTable) (*Result, error) {
	start := time.Now()

	mapping := p.candidates.Resolve(raw.Columns)
	nres, err := p.norm.Normalize(raw, mapping)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RowsDropped.Add(float64(len(nres.Dropped)))
	if len(nres.Records) == 0 {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, ErrNoRecords
	}

	summary := aggregate.Summarize(nres.Records)
	ins, err := insights.Compose(summary)
	if err != nil {
		metrics.PipelineRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.PipelineRuns.WithLabelValues("ok").Inc()
	metrics.PipelineDuration.Observe(time.Since(start).Seconds())
	p.log.InfoContext(ctx, "pipeline complete",
		slog.Int("records", len(nres.Records)),
		slog.Int("dropped", len(nres.Dropped)),
		slog.Duration("elapsed", time.Since(start)))

	return &Result{Records: nres.Records, Summary: summary, Insights: ins, Dropped: nres.Dropped}, nil
}
