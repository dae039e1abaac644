package models

import (
	"encoding/json"
	"time"
)

// DateValue is the tagged outcome of a date parse attempt: either a parsed
// timestamp or the original textual form when no layout matched. Consumers
// check Parsed instead of guessing from the representation.
type DateValue struct {
	Time   time.Time
	Raw    string
	Parsed bool
}

func (d DateValue) String() string {
	if d.Parsed {
		return d.Time.Format("2006-01-02")
	}
	return d.Raw
}

func (d DateValue) MarshalJSON() ([]byte, error) {
	if d.Parsed {
		return json.Marshal(d.Time)
	}
	return json.Marshal(d.Raw)
}

// CampaignRecord is one row of the canonical table. After normalization
// Impressions and Clicks are >= 1 and Spend >= 0.01, so the derived fields
// are always finite.
type CampaignRecord struct {
	Campaign    string    `json:"campaign"`
	Date        DateValue `json:"date"`
	Impressions float64   `json:"impressions"`
	Clicks      float64   `json:"clicks"`
	Spend       float64   `json:"spend"`
	Revenue     float64   `json:"revenue"`
	CTR         float64   `json:"ctr"`
	CPC         float64   `json:"cpc"`
	ROAS        float64   `json:"roas"`
}

// DroppedRow records a source row excluded during normalization.
type DroppedRow struct {
	Row    int    `json:"row"` // 1-based data row index in the source table
	Reason string `json:"reason"`
}

// CampaignRollup is a per-campaign aggregate, each value rounded to 2 dp.
type CampaignRollup struct {
	Campaign string  `json:"campaign"`
	ROAS     float64 `json:"roas"`
	Revenue  float64 `json:"revenue"`
	Spend    float64 `json:"spend"`
}

type CampaignScore struct {
	Campaign string  `json:"campaign"`
	ROAS     float64 `json:"roas"`
}

// SummaryStatistics is the global rollup of one canonical table. Best, Worst
// and Top5 are omitted (nil) when the table was empty, never zero-filled.
type SummaryStatistics struct {
	TotalImpressions int64            `json:"total_impressions"`
	TotalClicks      int64            `json:"total_clicks"`
	TotalSpend       float64          `json:"total_spend"`
	TotalRevenue     float64          `json:"total_revenue"`
	AvgCTR           float64          `json:"avg_ctr"`
	AvgCPC           float64          `json:"avg_cpc"`
	AvgROAS          float64          `json:"avg_roas"`
	Best             *CampaignScore   `json:"best_campaign,omitempty"`
	Worst            *CampaignScore   `json:"worst_campaign,omitempty"`
	Top5             []CampaignRollup `json:"top_5_campaigns,omitempty"`
}

// Insight is an immutable formatted statement for downstream reporting.
type Insight string

// Analysis is one stored pipeline run, as served over HTTP.
type Analysis struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Summary   SummaryStatistics `json:"summary"`
	Insights  []Insight         `json:"insights"`
	Dropped   []DroppedRow      `json:"dropped,omitempty"`
}
