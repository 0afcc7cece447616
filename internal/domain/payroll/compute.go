package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Labels for synthesized line items
const (
	LabelBasicSalary = "Basic Salary"
	LabelAllowance   = "Allowance"
	LabelBonus       = "Bonus"
	LabelOvertime    = "Overtime Pay"
	LabelIncomeTax   = "Income Tax"
	LabelPension     = "Pension"
)

// Synthesized deduction rates applied when a structure yields no deductions.
var (
	incomeTaxPercent = decimal.NewFromInt(10)
	pensionPercent   = decimal.NewFromInt(3)
	oneHundred       = decimal.NewFromInt(100)
)

// DefaultRates come from the salary structure policy section and drive slip
// synthesis for employees without a salary structure.
type DefaultRates struct {
	BaseSalary       decimal.Decimal
	AllowancePercent decimal.Decimal
	BonusPercent     decimal.Decimal
}

// LineAmount is one computed earning or deduction before persistence.
// Amounts are always positive here; sign is applied when materializing
// line items.
type LineAmount struct {
	ComponentID *string
	Label       string
	Type        ItemType
	Amount      decimal.Decimal
}

// SlipComputation is the pure result of slip arithmetic for one employee.
type SlipComputation struct {
	BaseSalary      decimal.Decimal
	Earnings        []LineAmount
	Deductions      []LineAmount
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}

// ComputeSlip derives one employee's slip from their salary structure, or
// from policy defaults when no structure exists. The base salary is prorated
// over the days the employee was on the books within the cycle window.
//
// Rules, in order:
//  1. structure present: base from the structure, items classified by
//     component type
//  2. no structure: base from the policy template, synthesized earnings of
//     Basic Salary, Allowance and Bonus
//  3. a Basic Salary earning is prepended when missing and base > 0
//  4. a positive overtimePay becomes an Overtime Pay earning, so it is part
//     of gross and subject to synthesized deductions
//  5. empty deductions synthesize Income Tax and Pension from gross
//  6. gross, total deductions and net are plain sums
func ComputeSlip(structure *SalaryStructure, defaults DefaultRates, overtimePay decimal.Decimal, workedDays, periodDays int) SlipComputation {
	var earnings, deductions []LineAmount
	var rawBase decimal.Decimal

	if structure != nil {
		rawBase = structure.BaseSalary
		for _, item := range structure.Items {
			componentID := item.ComponentID
			line := LineAmount{
				ComponentID: &componentID,
				Label:       structureItemLabel(item),
				Amount:      item.Amount,
			}
			if item.ComponentType != nil && *item.ComponentType == ComponentTypeDeduction {
				line.Type = ItemTypeDeduction
				deductions = append(deductions, line)
			} else {
				line.Type = ItemTypeEarning
				earnings = append(earnings, line)
			}
		}
	} else {
		rawBase = defaults.BaseSalary
	}

	base := ProrateAmount(rawBase, workedDays, periodDays)

	if structure == nil && base.IsPositive() {
		earnings = append(earnings,
			LineAmount{Label: LabelBasicSalary, Type: ItemTypeEarning, Amount: base},
			LineAmount{Label: LabelAllowance, Type: ItemTypeEarning, Amount: percentOf(base, defaults.AllowancePercent)},
			LineAmount{Label: LabelBonus, Type: ItemTypeEarning, Amount: percentOf(base, defaults.BonusPercent)},
		)
	}

	if !hasLabel(earnings, LabelBasicSalary) && base.IsPositive() {
		earnings = append([]LineAmount{{
			Label:  LabelBasicSalary,
			Type:   ItemTypeEarning,
			Amount: base,
		}}, earnings...)
	}

	if overtimePay.IsPositive() {
		earnings = append(earnings, LineAmount{
			Label:  LabelOvertime,
			Type:   ItemTypeEarning,
			Amount: overtimePay,
		})
	}

	gross := sumAmounts(earnings)

	if len(deductions) == 0 && gross.IsPositive() {
		deductions = append(deductions,
			LineAmount{Label: LabelIncomeTax, Type: ItemTypeDeduction, Amount: percentOf(gross, incomeTaxPercent)},
			LineAmount{Label: LabelPension, Type: ItemTypeDeduction, Amount: percentOf(gross, pensionPercent)},
		)
	}

	totalDeductions := sumAmounts(deductions)

	return SlipComputation{
		BaseSalary:      base,
		Earnings:        earnings,
		Deductions:      deductions,
		Gross:           gross,
		TotalDeductions: totalDeductions,
		Net:             gross.Sub(totalDeductions),
	}
}

// OvertimePay prices approved overtime at the policy multiplier. The hourly
// rate is the full (unprorated) base salary over the scheduled hours of the
// cycle window, rounded half-even to 4 places; the pay itself rounds to 2.
// Zero when there is no overtime, no positive base, or no scheduled hours.
func OvertimePay(baseSalary decimal.Decimal, overtime time.Duration, rate decimal.Decimal, periodDays, standardWorkHours int) decimal.Decimal {
	scheduledHours := periodDays * standardWorkHours
	if overtime <= 0 || scheduledHours <= 0 || !baseSalary.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}

	hourlyRate := baseSalary.Div(decimal.NewFromInt(int64(scheduledHours))).RoundBank(4)
	overtimeHours := decimal.NewFromInt(int64(overtime / time.Second)).Div(decimal.NewFromInt(3600))
	return hourlyRate.Mul(rate).Mul(overtimeHours).RoundBank(2)
}

// CategoryFor classifies a line item: deductions whose label contains "tax"
// are TAX, everything else is RECURRING.
func CategoryFor(itemType ItemType, label string) ItemCategory {
	if itemType == ItemTypeDeduction && strings.Contains(strings.ToLower(label), "tax") {
		return CategoryTax
	}
	return CategoryRecurring
}

// LineItems materializes the computation into persistable rows. Deduction
// amounts carry a negative sign.
func (c SlipComputation) LineItems(slipID string) []PayslipLineItem {
	items := make([]PayslipLineItem, 0, len(c.Earnings)+len(c.Deductions))
	for _, line := range c.Earnings {
		items = append(items, PayslipLineItem{
			SlipID:      slipID,
			ComponentID: line.ComponentID,
			Label:       line.Label,
			Type:        line.Type,
			Category:    CategoryFor(line.Type, line.Label),
			Amount:      line.Amount,
		})
	}
	for _, line := range c.Deductions {
		items = append(items, PayslipLineItem{
			SlipID:      slipID,
			ComponentID: line.ComponentID,
			Label:       line.Label,
			Type:        line.Type,
			Category:    CategoryFor(line.Type, line.Label),
			Amount:      line.Amount.Neg(),
		})
	}
	return items
}

func structureItemLabel(item StructureItem) string {
	if item.ComponentName != nil && *item.ComponentName != "" {
		return *item.ComponentName
	}
	return item.ComponentID
}

func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(oneHundred).RoundBank(2)
}

func hasLabel(lines []LineAmount, label string) bool {
	for _, line := range lines {
		if line.Label == label {
			return true
		}
	}
	return false
}

func sumAmounts(lines []LineAmount) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Amount)
	}
	return total
}
