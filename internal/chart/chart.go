package chart

import (
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/angelcm/campaign-report-go/internal/models"
)

// maxCampaigns caps the x axis; past this the labels stop being readable.
const maxCampaigns = 15

type campaignTotals struct {
	name        string
	impressions float64
	clicks      float64
	revenue     float64
}

// Render draws a grouped bar chart of per-campaign impressions, clicks and
// revenue and writes it to path as a PNG. When more than 15 campaigns exist,
// only the top 15 by revenue are drawn.
func Render(records []models.CampaignRecord, path string) error {
	totals := groupTotals(records)
	if len(totals) > maxCampaigns {
		sort.SliceStable(totals, func(i, j int) bool { return totals[i].revenue > totals[j].revenue })
		totals = totals[:maxCampaigns]
	}

	names := make([]string, len(totals))
	imps := make(plotter.Values, len(totals))
	clicks := make(plotter.Values, len(totals))
	revenue := make(plotter.Values, len(totals))
	for i, t := range totals {
		names[i] = t.name
		imps[i] = t.impressions
		clicks[i] = t.clicks
		revenue[i] = t.revenue
	}

	p := plot.New()
	p.Title.Text = "Campaign Performance Overview"
	p.Y.Label.Text = "Total"

	w := vg.Points(8)
	series := []struct {
		name   string
		vals   plotter.Values
		offset vg.Length
	}{
		{"Impressions", imps, -w},
		{"Clicks", clicks, 0},
		{"Revenue", revenue, w},
	}
	for i, sr := range series {
		bars, err := plotter.NewBarChart(sr.vals, w)
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = sr.offset
		p.Add(bars)
		p.Legend.Add(sr.name, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	return p.Save(12*vg.Inch, 7*vg.Inch, path)
}

// groupTotals sums impressions, clicks and revenue per campaign, preserving
// first-appearance order.
func groupTotals(records []models.CampaignRecord) []campaignTotals {
	idx := make(map[string]int)
	var out []campaignTotals
	for _, r := range records {
		i, ok := idx[r.Campaign]
		if !ok {
			i = len(out)
			idx[r.Campaign] = i
			out = append(out, campaignTotals{name: r.Campaign})
		}
		out[i].impressions += r.Impressions
		out[i].clicks += r.Clicks
		out[i].revenue += r.Revenue
	}
	return out
}
