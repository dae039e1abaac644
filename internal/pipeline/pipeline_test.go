package pipeline

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelcm/campaign-report-go/internal/ingest"
	"github.com/angelcm/campaign-report-go/internal/normalize"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readTable(t *testing.T, data string) *ingest.RawTable {
	t.Helper()
	raw, err := ingest.ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	return raw
}

func TestRunEndToEnd(t *testing.T) {
	raw := readTable(t, strings.Join([]string{
		"Campaign_ID,Date,Impressions,Clicks,Acquisition_Cost,ROI",
		`Alpha,2024-01-01,1000,100,"$500.00",1500`,
		"Alpha,2024-01-02,2000,150,400,800",
		"Beta,2024-01-01,500,50,100,600",
		"Gamma,2024-01-01,300,bad,50,100",
	}, "\n"))

	p := New(testLogger(), nil, 0)
	res, err := p.Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Len(t, res.Records, 3)
	require.Len(t, res.Dropped, 1)
	assert.Equal(t, 4, res.Dropped[0].Row)

	assert.Equal(t, int64(3500), res.Summary.TotalImpressions)
	assert.Equal(t, int64(300), res.Summary.TotalClicks)
	assert.InDelta(t, 1000.0, res.Summary.TotalSpend, 1e-9)
	assert.InDelta(t, 2900.0, res.Summary.TotalRevenue, 1e-9)

	require.NotNil(t, res.Summary.Best)
	assert.Equal(t, "Beta", res.Summary.Best.Campaign) // roas 6.0
	require.NotNil(t, res.Summary.Worst)
	assert.Equal(t, "Alpha", res.Summary.Worst.Campaign) // mean(3.0, 2.0) = 2.5

	require.Len(t, res.Summary.Top5, 2)
	assert.Equal(t, "Alpha", res.Summary.Top5[0].Campaign) // revenue 2300
	assert.Equal(t, "Beta", res.Summary.Top5[1].Campaign)

	assert.Len(t, res.Insights, 7)
	assert.Contains(t, string(res.Insights[0]), "3,500 impressions")
}

func TestRunNoUsableRecords(t *testing.T) {
	raw := readTable(t, strings.Join([]string{
		"Campaign,Date,Impressions,Clicks,Spend",
		"A,2024-01-01,100,bad,50",
		"B,2024-01-02,x,10,50",
	}, "\n"))

	p := New(testLogger(), nil, 0)
	_, err := p.Run(context.Background(), raw)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestRunMissingColumn(t *testing.T) {
	raw := readTable(t, "Campaign,Date,Impressions,Clicks\nA,2024-01-01,100,10\n")

	p := New(testLogger(), nil, 0)
	_, err := p.Run(context.Background(), raw)
	assert.ErrorIs(t, err, normalize.ErrMissingColumn)
}
