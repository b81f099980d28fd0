package kpi

import "propkpi/server/internal/models"

// Compute derives the investment KPIs for a single property.
//
// Compute never fails: every ratio whose denominator is zero or negative is
// reported as 0. Inputs are not validated; nonsensical inputs produce
// arithmetically consistent but meaningless output.
func Compute(in models.PropertyInputs) models.KpiResult {
	total := in.PurchasePrice * (1 + in.ClosingCostRate + in.BrokerFeeRate)
	equity := total * in.EquityRatio
	debt := total - equity

	opex := in.OpexPerArea * in.LivingArea
	capex := in.CapexReservePerArea * in.LivingArea
	noi := in.AnnualNetRent - opex - capex

	debtService := debt * in.DebtServiceRate

	return models.KpiResult{
		Name:                  in.Name,
		TotalAcquisitionCost:  total,
		Equity:                equity,
		Debt:                  debt,
		OperatingExpenseTotal: opex,
		CapexTotal:            capex,
		NetOperatingIncome:    noi,
		DebtService:           debtService,
		CapRate:               ratio(noi, total),
		DSCR:                  ratio(noi, debtService),
		CashOnCash:            ratio(noi-debtService, equity),
		NetRentalYield:        ratio(noi, in.PurchasePrice),
	}
}

// ratio returns num/den, or 0 when den <= 0.
func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// PercentToFraction converts a percent-style entry (12.0 meaning 12%) to a fraction.
func PercentToFraction(p float64) float64 {
	return p / 100
}

// InputsFromPercent returns a copy of in with every rate field converted from percent to fraction.
// The conversion is uniform: closing cost, broker fee, equity ratio and debt
// service rate are all divided by 100, so a caller using percent entry must
// send 10 for a 10% equity ratio and 5.5 for a 5.5% annuity, not 0.10 or 0.055.
func InputsFromPercent(in models.PropertyInputs) models.PropertyInputs {
	in.ClosingCostRate = PercentToFraction(in.ClosingCostRate)
	in.BrokerFeeRate = PercentToFraction(in.BrokerFeeRate)
	in.EquityRatio = PercentToFraction(in.EquityRatio)
	in.DebtServiceRate = PercentToFraction(in.DebtServiceRate)
	return in
}

// DefaultInputs returns the parameters a fresh dashboard session starts with.
func DefaultInputs() models.PropertyInputs {
	return models.PropertyInputs{
		PurchasePrice:       700000,
		AnnualNetRent:       55000,
		LivingArea:          300,
		ClosingCostRate:     0.12,
		BrokerFeeRate:       0,
		EquityRatio:         0.10,
		DebtServiceRate:     0.055,
		OpexPerArea:         15,
		CapexReservePerArea: 10,
	}
}

// MaxCapRateGauge is the cap rate at which a progress gauge is full.
const MaxCapRateGauge = 0.1

// CapRateGauge clamps a cap rate into [0, MaxCapRateGauge] for progress-style display.
func CapRateGauge(capRate float64) float64 {
	if capRate < 0 {
		return 0
	}
	if capRate > MaxCapRateGauge {
		return MaxCapRateGauge
	}
	return capRate
}
