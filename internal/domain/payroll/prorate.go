package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProrateAmount scales a base amount by worked days over period days, rounded
// half-to-even to two decimal places. A non-positive period yields 0.00.
func ProrateAmount(base decimal.Decimal, workedDays, periodDays int) decimal.Decimal {
	if periodDays <= 0 {
		return decimal.Zero.Round(2)
	}
	return base.
		Mul(decimal.NewFromInt(int64(workedDays))).
		Div(decimal.NewFromInt(int64(periodDays))).
		RoundBank(2)
}

// WorkedDaysInWindow counts the calendar days of [start, end] during which the
// employee was on the books, given hire and optional termination dates.
func WorkedDaysInWindow(start, end, hireDate time.Time, terminationDate *time.Time) int {
	from := start
	if hireDate.After(from) {
		from = hireDate
	}
	to := end
	if terminationDate != nil && terminationDate.Before(to) {
		to = *terminationDate
	}
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}
