package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical field names every input is normalized into.
const (
	FieldCampaign    = "campaign"
	FieldDate        = "date"
	FieldImpressions = "impressions"
	FieldClicks      = "clicks"
	FieldSpend       = "spend"
	FieldRevenue     = "revenue"
)

// Fields lists the canonical fields in resolution order.
var Fields = []string{FieldCampaign, FieldDate, FieldImpressions, FieldClicks, FieldSpend, FieldRevenue}

// Candidates maps each canonical field to its ordered list of accepted source
// column names. Matching is exact and case-sensitive; the first candidate
// present in the input wins.
type Candidates map[string][]string

// Default returns the built-in candidate lists.
func Default() Candidates {
	return Candidates{
		FieldCampaign:    {"Campaign_ID", "campaign", "Campaign", "campaign_id"},
		FieldDate:        {"Date", "date", "timestamp", "Date_Stamp"},
		FieldImpressions: {"Impressions", "impressions", "views", "Views"},
		FieldClicks:      {"Clicks", "clicks", "click_count"},
		FieldSpend:       {"Acquisition_Cost", "Spend", "spend", "cost", "Cost"},
		FieldRevenue:     {"ROI", "Revenue", "revenue", "sales", "conversion_value"},
	}
}

// ColumnMapping maps a canonical field to the source column actually present.
type ColumnMapping map[string]string

// Resolve tests each field's candidates against the input column set. Fields
// with no matching candidate are absent from the result; the normalizer
// decides which of them are required. Resolving the same column set always
// yields the same mapping.
func (c Candidates) Resolve(columns []string) ColumnMapping {
	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col] = struct{}{}
	}
	m := make(ColumnMapping, len(Fields))
	for _, f := range Fields {
		for _, cand := range c[f] {
			if _, ok := present[cand]; ok {
				m[f] = cand
				break
			}
		}
	}
	return m
}

// Load reads candidate lists from a YAML file, overriding the defaults for
// the fields it names. Unknown field keys are rejected.
func Load(path string) (Candidates, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string][]string
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse schema file: %w", err)
	}
	c := Default()
	for field, names := range raw {
		if _, ok := c[field]; !ok {
			return nil, fmt.Errorf("unknown canonical field %q in %s", field, path)
		}
		c[field] = names
	}
	return c, nil
}
