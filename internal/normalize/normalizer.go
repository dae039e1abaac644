package normalize

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/models"
	"github.com/angelcm/campaign-report-go/internal/schema"
)

// ErrMissingColumn reports a required canonical field with no source column
// after mapping. The whole table is unusable when this happens.
var ErrMissingColumn = errors.New("missing required column")

// DefaultRevenueMultiplier synthesizes revenue from spend when the input has
// no usable revenue column. Heurística del dataset original, no una verdad
// general; override via REVENUE_MULTIPLIER.
const DefaultRevenueMultiplier = 2.5

var required = []string{schema.FieldCampaign, schema.FieldDate, schema.FieldImpressions, schema.FieldClicks, schema.FieldSpend}

type Normalizer struct {
	log        *slog.Logger
	multiplier float64
}

func New(log *slog.Logger, multiplier float64) *Normalizer {
	if log == nil {
		log = slog.Default()
	}
	if multiplier <= 0 {
		multiplier = DefaultRevenueMultiplier
	}
	return &Normalizer{log: log, multiplier: multiplier}
}

// Result is the canonical table plus every excluded source row with its
// reason. Nothing is discarded silently.
type Result struct {
	Records []models.CampaignRecord
	Dropped []models.DroppedRow
}

// Normalize applies the column mapping, coerces numerics, synthesizes revenue
// when the input has none, clamps degenerate values and computes the derived
// metrics. Rows whose impressions, clicks or spend fail coercion are excluded
// and reported in Result.Dropped.
func (n *Normalizer) Normalize(raw *ingest.RawTable, mapping schema.ColumnMapping) (*Result, error) {
	colIdx := make(map[string]int, len(raw.Columns))
	for i, c := range raw.Columns {
		if _, ok := colIdx[c]; !ok {
			colIdx[c] = i // la primera columna gana si hay duplicados
		}
	}
	idx := make(map[string]int, len(mapping))
	for field, source := range mapping {
		if i, ok := colIdx[source]; ok {
			idx[field] = i
		}
	}
	for _, f := range required {
		if _, ok := idx[f]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, f)
		}
	}
	_, hasRevenue := idx[schema.FieldRevenue]

	res := &Result{}
	for i, row := range raw.Rows {
		cell := func(field string) string {
			j := idx[field]
			if j >= len(row) {
				return ""
			}
			return row[j]
		}

		imp, ok := parseNumber(cell(schema.FieldImpressions))
		if !ok {
			res.Dropped = append(res.Dropped, models.DroppedRow{Row: i + 1, Reason: "non-numeric impressions"})
			continue
		}
		clicks, ok := parseNumber(cell(schema.FieldClicks))
		if !ok {
			res.Dropped = append(res.Dropped, models.DroppedRow{Row: i + 1, Reason: "non-numeric clicks"})
			continue
		}
		spend, ok := parseNumber(stripCurrency(cell(schema.FieldSpend)))
		if !ok {
			res.Dropped = append(res.Dropped, models.DroppedRow{Row: i + 1, Reason: "non-numeric spend"})
			continue
		}

		// Revenue is resolved before the degenerate guard so synthesis sees
		// the raw spend. An unparseable revenue cell falls back to synthesis
		// to keep ROAS finite.
		revenue := spend * n.multiplier
		if hasRevenue {
			if v, ok := parseNumber(cell(schema.FieldRevenue)); ok {
				revenue = v
			}
		}
		if revenue < 0 {
			revenue = 0
		}

		imp = clampMin(imp, 1)
		clicks = clampMin(clicks, 1)
		spend = clampMin(spend, 0.01)

		res.Records = append(res.Records, models.CampaignRecord{
			Campaign:    strings.TrimSpace(cell(schema.FieldCampaign)),
			Date:        parseDate(cell(schema.FieldDate)),
			Impressions: imp,
			Clicks:      clicks,
			Spend:       spend,
			Revenue:     revenue,
			CTR:         clicks / imp,
			CPC:         spend / clicks,
			ROAS:        revenue / spend,
		})
	}

	if len(res.Dropped) > 0 {
		n.log.Info("dropped unusable rows", slog.Int("count", len(res.Dropped)))
	}
	return res, nil
}

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

func stripCurrency(s string) string { return currencyReplacer.Replace(s) }

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

// dateLayouts are tried in order; the original textual form is kept when none
// match.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"2006/01/02",
}

func parseDate(s string) models.DateValue {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return models.DateValue{Time: t, Raw: s, Parsed: true}
		}
	}
	return models.DateValue{Raw: s}
}
