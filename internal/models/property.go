package models

import "math"

// PropertyInputs holds the acquisition and operating parameters of one property.
// All rate fields are fractions (0.12 means 12%).
type PropertyInputs struct {
	Name                string  `json:"name,omitempty"`
	PurchasePrice       float64 `json:"purchase_price" binding:"gt=0"`
	AnnualNetRent       float64 `json:"annual_net_rent" binding:"gte=0"`
	LivingArea          float64 `json:"living_area" binding:"gt=0"`
	ClosingCostRate     float64 `json:"closing_cost_rate" binding:"gte=0,lte=1"`
	BrokerFeeRate       float64 `json:"broker_fee_rate" binding:"gte=0,lte=1"`
	EquityRatio         float64 `json:"equity_ratio" binding:"gte=0,lte=1"`
	DebtServiceRate     float64 `json:"debt_service_rate" binding:"gt=0,lte=1"`
	OpexPerArea         float64 `json:"opex_per_area" binding:"gte=0"`
	CapexReservePerArea float64 `json:"capex_reserve_per_area" binding:"gte=0"`
}

// KpiResult is the derived set of investment KPIs for one PropertyInputs.
type KpiResult struct {
	Name                  string  `json:"name,omitempty"`
	TotalAcquisitionCost  float64 `json:"total_acquisition_cost"`
	Equity                float64 `json:"equity"`
	Debt                  float64 `json:"debt"`
	OperatingExpenseTotal float64 `json:"operating_expense_total"`
	CapexTotal            float64 `json:"capex_total"`
	NetOperatingIncome    float64 `json:"net_operating_income"`
	DebtService           float64 `json:"debt_service"`
	CapRate               float64 `json:"cap_rate"`
	DSCR                  float64 `json:"dscr"`
	CashOnCash            float64 `json:"cash_on_cash"`
	NetRentalYield        float64 `json:"net_rental_yield"`
}

// Finite reports whether every numeric field is neither NaN nor infinite.
func (r KpiResult) Finite() bool {
	for _, v := range []float64{
		r.TotalAcquisitionCost, r.Equity, r.Debt, r.OperatingExpenseTotal, r.CapexTotal,
		r.NetOperatingIncome, r.DebtService, r.CapRate, r.DSCR, r.CashOnCash, r.NetRentalYield,
	} {
		if !isFinite(v) {
			return false
		}
	}
	return true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
