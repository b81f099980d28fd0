package report

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"propkpi/server/internal/kpi"
	"propkpi/server/internal/models"
)

// CurrencySymbol is appended to every formatted currency amount.
const CurrencySymbol = "€"

// Row is one line of the KPI table as shown to the user.
type Row struct {
	Metric models.Metric `json:"metric"`
	Label  string        `json:"label"`
	Value  string        `json:"value"`
}

// KPITable renders the headline KPIs of a result as display rows.
func KPITable(r models.KpiResult) []Row {
	return []Row{
		{models.MetricTotalAcquisitionCost, "Total cost (incl. closing costs)", FormatCurrency(r.TotalAcquisitionCost)},
		{models.MetricEquity, "Equity", FormatCurrency(r.Equity)},
		{models.MetricDebt, "Debt", FormatCurrency(r.Debt)},
		{models.MetricNetOperatingIncome, "NOI (adjusted)", FormatCurrency(r.NetOperatingIncome)},
		{models.MetricCapRate, "Cap rate", FormatPercent(r.CapRate)},
		{models.MetricDSCR, "DSCR", FormatRatio(r.DSCR)},
		{models.MetricCashOnCash, "Cash-on-cash return year 1", FormatPercent(r.CashOnCash)},
		{models.MetricNetRentalYield, "Net rental yield", FormatPercent(r.NetRentalYield)},
	}
}

// FormatCurrency rounds to whole units and groups thousands, e.g. "784,000 €".
func FormatCurrency(v float64) string {
	return humanize.Commaf(math.Round(v)) + " " + CurrencySymbol
}

// FormatPercent renders a fraction as a percentage with two decimals, e.g. "6.06 %".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f %%", v*100)
}

// FormatRatio renders a plain ratio with two decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// DSCRMessage returns the banner text shown for a DSCR status.
func DSCRMessage(status kpi.DSCRStatus) string {
	switch status {
	case kpi.DSCRInsufficient:
		return "NOI does not cover the debt service"
	case kpi.DSCRMarginal:
		return "Marginally sustainable"
	case kpi.DSCRSound:
		return "Safely sustainable"
	default:
		return ""
	}
}
