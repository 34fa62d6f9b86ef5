// Economy model: a linear feedback recurrence over revenue,
// expenditure, debt, and treasury. Intentionally simple; not a market.
package engine

// Debt bounds.
const (
	debtMin = 25.0
	debtMax = 250.0
)

const treasuryFloor = -120.0

// Budget is the fiscal state advanced once per tick.
type Budget struct {
	Revenue     float64 `json:"revenue"`
	Expenditure float64 `json:"expenditure"`
	Deficit     float64 `json:"deficit"`
	Debt        float64 `json:"debt"`
	Treasury    float64 `json:"treasury"`
}

// updateEconomy advances the fiscal recurrence. Reads last tick's KPI
// values; the KPI update runs after this step.
func (s *Simulation) updateEconomy() {
	cfg := s.cfg
	avgLevel := s.avgDepartmentLevel()

	momentumBonus := s.Rapid.Momentum * 6

	revenue := cfg.RevenueBase +
		cfg.RevenuePerEconomy*s.KPIs.Get(KPIEconomy) +
		cfg.RevenuePerLevel*(avgLevel-1) +
		momentumBonus
	s.Budget.Revenue = clamp(revenue, cfg.RevenueFloor, cfg.RevenueCeil)

	expenditure := cfg.ExpenditureBase +
		cfg.ExpenditurePerBudget*s.avgDepartmentBudget() +
		cfg.ExpenditureHealthGap*(100-s.KPIs.Get(KPIHealth)) +
		cfg.ExpenditurePerDebt*s.Budget.Debt
	s.Budget.Expenditure = clamp(expenditure, cfg.ExpenditureFloor, cfg.ExpenditureCeil)

	s.Budget.Deficit = s.Budget.Revenue - s.Budget.Expenditure

	s.Budget.Debt = clamp(s.Budget.Debt-s.Budget.Deficit*cfg.DebtRate, debtMin, debtMax)
	s.Budget.Treasury = clamp(
		s.Budget.Treasury+s.Budget.Deficit*cfg.TreasuryRate,
		treasuryFloor,
		s.treasuryCeiling(),
	)
}

// treasuryCeiling grows with the economy KPI, average department level,
// and the best rapid-decision streak achieved.
func (s *Simulation) treasuryCeiling() float64 {
	cfg := s.cfg
	return cfg.TreasuryCeilBase +
		cfg.TreasuryCeilEconomy*s.KPIs.Get(KPIEconomy) +
		cfg.TreasuryCeilPerLevel*s.avgDepartmentLevel() +
		cfg.TreasuryCeilPerStreak*float64(s.Rapid.BestStreak)
}

// spendTreasury debits the treasury if it can afford the cost.
// Returns false (no change) when funds are short.
func (s *Simulation) spendTreasury(cost float64) bool {
	if cost > 0 && s.Budget.Treasury < cost {
		return false
	}
	s.Budget.Treasury -= cost
	return true
}
