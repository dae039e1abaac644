package aggregate

import (
	"sort"

	"github.com/angelcm/campaign-report-go/internal/models"
)

// Summarize computes global totals and unweighted per-record averages plus
// per-campaign rollups and rankings. Ties on roas or revenue keep the
// campaign that appears first in record order, so the result is deterministic
// for a given table.
func Summarize(records []models.CampaignRecord) models.SummaryStatistics {
	var s models.SummaryStatistics
	if len(records) == 0 {
		return s
	}

	type acc struct {
		roasSum float64
		n       int
		revenue float64
		spend   float64
	}
	byCampaign := make(map[string]*acc)
	var order []string // orden de primera aparición

	var sumImp, sumClicks, sumSpend, sumRevenue float64
	var sumCTR, sumCPC, sumROAS float64
	for _, r := range records {
		sumImp += r.Impressions
		sumClicks += r.Clicks
		sumSpend += r.Spend
		sumRevenue += r.Revenue
		sumCTR += r.CTR
		sumCPC += r.CPC
		sumROAS += r.ROAS

		a, ok := byCampaign[r.Campaign]
		if !ok {
			a = &acc{}
			byCampaign[r.Campaign] = a
			order = append(order, r.Campaign)
		}
		a.roasSum += r.ROAS
		a.n++
		a.revenue += r.Revenue
		a.spend += r.Spend
	}

	n := float64(len(records))
	s.TotalImpressions = int64(sumImp)
	s.TotalClicks = int64(sumClicks)
	s.TotalSpend = sumSpend
	s.TotalRevenue = sumRevenue
	s.AvgCTR = sumCTR / n
	s.AvgCPC = sumCPC / n
	s.AvgROAS = sumROAS / n

	rollups := make([]models.CampaignRollup, 0, len(order))
	for _, c := range order {
		a := byCampaign[c]
		rollups = append(rollups, models.CampaignRollup{
			Campaign: c,
			ROAS:     round2(a.roasSum / float64(a.n)),
			Revenue:  round2(a.revenue),
			Spend:    round2(a.spend),
		})
	}

	// Strict comparisons keep the first-appearing campaign on ties.
	best, worst := rollups[0], rollups[0]
	for _, r := range rollups[1:] {
		if r.ROAS > best.ROAS {
			best = r
		}
		if r.ROAS < worst.ROAS {
			worst = r
		}
	}
	s.Best = &models.CampaignScore{Campaign: best.Campaign, ROAS: best.ROAS}
	s.Worst = &models.CampaignScore{Campaign: worst.Campaign, ROAS: worst.ROAS}

	top := make([]models.CampaignRollup, len(rollups))
	copy(top, rollups)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Revenue > top[j].Revenue })
	if len(top) > 5 {
		top = top[:5]
	}
	s.Top5 = top

	return s
}

func round2(f float64) float64 { return float64(int64(f*100+0.5)) / 100 }
