package insights

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/angelcm/campaign-report-go/internal/models"
)

// ErrIncompleteSummary means the summary carries no campaign rankings (empty
// table upstream). The composer refuses to invent defaults for them.
var ErrIncompleteSummary = errors.New("summary has no campaign rankings")

var printer = message.NewPrinter(language.English)

// Compose renders the seven fixed-order statements for downstream reporting.
func Compose(s models.SummaryStatistics) ([]models.Insight, error) {
	if s.Best == nil || s.Worst == nil {
		return nil, ErrIncompleteSummary
	}
	return []models.Insight{
		models.Insight(printer.Sprintf("Our campaigns delivered %v impressions and %v clicks.",
			number.Decimal(s.TotalImpressions), number.Decimal(s.TotalClicks))),
		models.Insight(fmt.Sprintf("Total ad spend was %s, generating %s in revenue.",
			currency(s.TotalSpend), currency(s.TotalRevenue))),
		models.Insight(fmt.Sprintf("The average click-through rate was %.2f%%.", s.AvgCTR*100)),
		models.Insight(fmt.Sprintf("Each click cost $%.2f.", s.AvgCPC)),
		models.Insight(fmt.Sprintf("The best campaign was '%s' with ROAS %.2f.", s.Best.Campaign, s.Best.ROAS)),
		models.Insight(fmt.Sprintf("The lowest performing campaign was '%s' with ROAS %.2f.", s.Worst.Campaign, s.Worst.ROAS)),
		models.Insight(fmt.Sprintf("Overall ROAS was %.2f.", s.AvgROAS)),
	}, nil
}

// currency formats a dollar amount with thousands grouping and two decimals.
func currency(v float64) string {
	return printer.Sprintf("$%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
