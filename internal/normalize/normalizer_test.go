package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/schema"
)

func table(cols []string, rows ...[]string) *ingest.RawTable {
	return &ingest.RawTable{Columns: cols, Rows: rows}
}

func normalizeDefault(t *testing.T, raw *ingest.RawTable) *Result {
	t.Helper()
	res, err := New(nil, 0).Normalize(raw, schema.Default().Resolve(raw.Columns))
	require.NoError(t, err)
	return res
}

func TestSynthesizedRevenue(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"CampaignX", "2024-01-01", "100", "10", "50"},
	)
	res := normalizeDefault(t, raw)
	require.Len(t, res.Records, 1)

	r := res.Records[0]
	assert.Equal(t, "CampaignX", r.Campaign)
	assert.InDelta(t, 125.0, r.Revenue, 1e-9)
	assert.InDelta(t, 2.5, r.ROAS, 1e-9)
	assert.InDelta(t, 0.10, r.CTR, 1e-9)
	assert.InDelta(t, 5.0, r.CPC, 1e-9)
	assert.True(t, r.Date.Parsed)
	assert.Equal(t, "2024-01-01", r.Date.String())
}

func TestConfigurableMultiplier(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "100", "10", "50"},
	)
	res, err := New(nil, 3.0).Normalize(raw, schema.Default().Resolve(raw.Columns))
	require.NoError(t, err)
	assert.InDelta(t, 150.0, res.Records[0].Revenue, 1e-9)
}

func TestZeroImpressionsClamped(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "0", "4", "10"},
	)
	r := normalizeDefault(t, raw).Records[0]
	assert.InDelta(t, 1.0, r.Impressions, 1e-9)
	assert.InDelta(t, 4.0, r.CTR, 1e-9) // clicks/1
}

func TestZeroSpendGuardedAfterSynthesis(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "100", "10", "0"},
	)
	r := normalizeDefault(t, raw).Records[0]
	// revenue se sintetiza con el spend crudo, antes del guard
	assert.InDelta(t, 0.0, r.Revenue, 1e-9)
	assert.InDelta(t, 0.01, r.Spend, 1e-9)
	assert.InDelta(t, 0.0, r.ROAS, 1e-9)
}

func TestCurrencySpendCoerced(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Acquisition_Cost"},
		[]string{"A", "2024-01-01", "100", "10", "$1,250.00"},
	)
	r := normalizeDefault(t, raw).Records[0]
	assert.InDelta(t, 1250.0, r.Spend, 1e-9)
}

func TestNonNumericClicksDropped(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "100", "abc", "50"},
		[]string{"B", "2024-01-02", "200", "20", "80"},
	)
	res := normalizeDefault(t, raw)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "B", res.Records[0].Campaign)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, 1, res.Dropped[0].Row)
	assert.Equal(t, "non-numeric clicks", res.Dropped[0].Reason)
}

func TestNaNLiteralDropped(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "NaN", "10", "50"},
	)
	res := normalizeDefault(t, raw)
	assert.Empty(t, res.Records)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, "non-numeric impressions", res.Dropped[0].Reason)
}

func TestMissingRequiredColumn(t *testing.T) {
	raw := table([]string{"Campaign", "Impressions", "Clicks", "Spend"})
	_, err := New(nil, 0).Normalize(raw, schema.Default().Resolve(raw.Columns))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.ErrorContains(t, err, "date")
}

func TestRevenueCoercionFallsBackToSynthesis(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend", "Revenue"},
		[]string{"A", "2024-01-01", "100", "10", "10", "n/a"},
		[]string{"B", "2024-01-02", "100", "10", "10", "99"},
	)
	res := normalizeDefault(t, raw)
	require.Len(t, res.Records, 2)
	assert.InDelta(t, 25.0, res.Records[0].Revenue, 1e-9)
	assert.InDelta(t, 99.0, res.Records[1].Revenue, 1e-9)
}

func TestGuardInvariant(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "0", "0", "0"},
		[]string{"B", "2024-01-02", "-5", "-1", "-2.5"},
		[]string{"C", "2024-01-03", "1000", "50", "12.34"},
	)
	res := normalizeDefault(t, raw)
	require.Len(t, res.Records, 3)
	for _, r := range res.Records {
		assert.GreaterOrEqual(t, r.Impressions, 1.0)
		assert.GreaterOrEqual(t, r.Clicks, 1.0)
		assert.GreaterOrEqual(t, r.Spend, 0.01)
		assert.GreaterOrEqual(t, r.CTR, 0.0)
		assert.GreaterOrEqual(t, r.CPC, 0.0)
		assert.GreaterOrEqual(t, r.ROAS, 0.0)
	}
}

func TestDateFallbackKeepsRaw(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "sometime last week", "100", "10", "50"},
	)
	r := normalizeDefault(t, raw).Records[0]
	assert.False(t, r.Date.Parsed)
	assert.Equal(t, "sometime last week", r.Date.Raw)
}

func TestShortRowDropped(t *testing.T) {
	raw := table(
		[]string{"Campaign", "Date", "Impressions", "Clicks", "Spend"},
		[]string{"A", "2024-01-01", "100"},
	)
	res := normalizeDefault(t, raw)
	assert.Empty(t, res.Records)
	assert.Len(t, res.Dropped, 1)
}
