package kpi

import "propkpi/server/internal/models"

type metricSpec struct {
	metric    models.Metric
	direction models.Direction
	value     func(models.KpiResult) float64
}

// metricSpecs lists every numeric KPI field in KpiResult order.
var metricSpecs = []metricSpec{
	{models.MetricTotalAcquisitionCost, models.LowerIsBetter, func(r models.KpiResult) float64 { return r.TotalAcquisitionCost }},
	{models.MetricEquity, models.Neutral, func(r models.KpiResult) float64 { return r.Equity }},
	{models.MetricDebt, models.Neutral, func(r models.KpiResult) float64 { return r.Debt }},
	{models.MetricOperatingExpenseTotal, models.LowerIsBetter, func(r models.KpiResult) float64 { return r.OperatingExpenseTotal }},
	{models.MetricCapexTotal, models.LowerIsBetter, func(r models.KpiResult) float64 { return r.CapexTotal }},
	{models.MetricNetOperatingIncome, models.HigherIsBetter, func(r models.KpiResult) float64 { return r.NetOperatingIncome }},
	{models.MetricDebtService, models.LowerIsBetter, func(r models.KpiResult) float64 { return r.DebtService }},
	{models.MetricCapRate, models.HigherIsBetter, func(r models.KpiResult) float64 { return r.CapRate }},
	{models.MetricDSCR, models.HigherIsBetter, func(r models.KpiResult) float64 { return r.DSCR }},
	{models.MetricCashOnCash, models.HigherIsBetter, func(r models.KpiResult) float64 { return r.CashOnCash }},
	{models.MetricNetRentalYield, models.HigherIsBetter, func(r models.KpiResult) float64 { return r.NetRentalYield }},
}

// MetricDirection returns whether a higher value of metric is better, worse, or not judged.
func MetricDirection(metric models.Metric) models.Direction {
	for _, s := range metricSpecs {
		if s.metric == metric {
			return s.direction
		}
	}
	return models.Neutral
}

// Compare computes A − B for every numeric KPI and judges each delta by the metric's direction.
func Compare(a, b models.KpiResult) models.ComparisonResult {
	metrics := make([]models.MetricComparison, 0, len(metricSpecs))
	for _, s := range metricSpecs {
		va, vb := s.value(a), s.value(b)
		delta := va - vb
		metrics = append(metrics, models.MetricComparison{
			Metric:    s.metric,
			A:         va,
			B:         vb,
			Delta:     delta,
			Direction: s.direction,
			Verdict:   Judge(s.direction, delta),
		})
	}

	return models.ComparisonResult{
		NameA:   a.Name,
		NameB:   b.Name,
		Metrics: metrics,
	}
}

// Judge turns a delta (A − B) into a verdict for the given direction.
func Judge(direction models.Direction, delta float64) models.Verdict {
	switch direction {
	case models.LowerIsBetter:
		delta = -delta
	case models.HigherIsBetter:
	default:
		return models.VerdictNotJudged
	}

	switch {
	case delta > 0:
		return models.VerdictBetter
	case delta < 0:
		return models.VerdictWorse
	default:
		return models.VerdictEqual
	}
}
