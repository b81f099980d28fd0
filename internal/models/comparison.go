package models

// Metric names a numeric KPI field. Values match the KpiResult JSON keys.
type Metric string

const (
	MetricTotalAcquisitionCost  Metric = "total_acquisition_cost"
	MetricEquity                Metric = "equity"
	MetricDebt                  Metric = "debt"
	MetricOperatingExpenseTotal Metric = "operating_expense_total"
	MetricCapexTotal            Metric = "capex_total"
	MetricNetOperatingIncome    Metric = "net_operating_income"
	MetricDebtService           Metric = "debt_service"
	MetricCapRate               Metric = "cap_rate"
	MetricDSCR                  Metric = "dscr"
	MetricCashOnCash            Metric = "cash_on_cash"
	MetricNetRentalYield        Metric = "net_rental_yield"
)

// Direction tells whether a larger value of a metric is preferable.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
	Neutral        Direction = "neutral"
)

// Verdict is the judgment of property A relative to property B for one metric.
type Verdict string

const (
	VerdictBetter    Verdict = "A better"
	VerdictWorse     Verdict = "A worse"
	VerdictEqual     Verdict = "equal"
	VerdictNotJudged Verdict = "not judged"
)

// MetricComparison is the A-versus-B outcome for a single metric.
type MetricComparison struct {
	Metric    Metric    `json:"metric"`
	A         float64   `json:"a"`
	B         float64   `json:"b"`
	Delta     float64   `json:"delta"`
	Direction Direction `json:"direction"`
	Verdict   Verdict   `json:"verdict"`
}

// ComparisonResult holds one MetricComparison per numeric KPI field, in KpiResult field order.
type ComparisonResult struct {
	NameA   string             `json:"name_a,omitempty"`
	NameB   string             `json:"name_b,omitempty"`
	Metrics []MetricComparison `json:"metrics"`
}

// Lookup returns the comparison for the given metric.
func (c ComparisonResult) Lookup(metric Metric) (MetricComparison, bool) {
	for _, m := range c.Metrics {
		if m.Metric == metric {
			return m, true
		}
	}
	return MetricComparison{}, false
}

// Finite reports whether every compared value and delta is neither NaN nor infinite.
func (c ComparisonResult) Finite() bool {
	for _, m := range c.Metrics {
		if !isFinite(m.A) || !isFinite(m.B) || !isFinite(m.Delta) {
			return false
		}
	}
	return true
}
